package project_test

import (
	"testing"

	"github.com/rpggio/listings/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, project.TotalPages(0, 6))
	require.Equal(t, 1, project.TotalPages(1, 6))
	require.Equal(t, 1, project.TotalPages(6, 6))
	require.Equal(t, 2, project.TotalPages(7, 6))
	require.Equal(t, 3, project.TotalPages(14, 6))
	require.Equal(t, 0, project.TotalPages(14, 0))
}

func TestPageSlice_Summary(t *testing.T) {
	require.Equal(t, "No projects found", project.PageSlice{Outcome: project.OutcomeNoMatches}.Summary())
	require.Equal(t, "Showing 7-12 of 14 projects", project.PageSlice{Outcome: project.OutcomeItems, Start: 7, End: 12, Total: 14}.Summary())
}

func TestCard_Decoration(t *testing.T) {
	catalog := loadedCatalog(t)
	require.True(t, catalog.GoToPage(2))

	items := catalog.Page().Items
	require.Equal(t, 6, items[0].Index)
	require.Equal(t, 100, items[0].AnimationDelayMS)
	require.Equal(t, 600, items[5].AnimationDelayMS)
	require.Equal(t, project.BadgeClass(items[0].Status), items[0].BadgeClass)
}
