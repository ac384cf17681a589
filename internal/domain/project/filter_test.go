package project_test

import (
	"testing"

	"github.com/rpggio/listings/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestFilters_Match(t *testing.T) {
	p := project.Project{Status: "Upcoming", PropertyType: "Villa", Group: "Premium", City: "Pune"}

	tests := []struct {
		name    string
		filters project.Filters
		want    bool
	}{
		{name: "no constraints", filters: project.Filters{}, want: true},
		{name: "single match", filters: project.Filters{City: "Pune"}, want: true},
		{name: "all match", filters: project.Filters{Status: "Upcoming", PropertyType: "Villa", Group: "Premium", City: "Pune"}, want: true},
		{name: "one mismatch", filters: project.Filters{Status: "Upcoming", City: "Mumbai"}, want: false},
		{name: "substring is not a match", filters: project.Filters{City: "Pun"}, want: false},
		{name: "case differs", filters: project.Filters{Group: "premium"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filters.Match(p))
		})
	}
}

func TestFilters_With(t *testing.T) {
	var f project.Filters

	f, ok := f.With(project.DimensionGroup, "Premium")
	require.True(t, ok)
	require.Equal(t, "Premium", f.Get(project.DimensionGroup))
	require.False(t, f.IsZero())

	same, ok := f.With(project.Dimension("builder"), "Lodha")
	require.False(t, ok)
	require.Equal(t, f, same)

	f, _ = f.With(project.DimensionGroup, "")
	require.True(t, f.IsZero())
}

func TestDimension_Valid(t *testing.T) {
	for _, d := range project.Dimensions() {
		require.True(t, d.Valid(), d)
	}
	require.False(t, project.Dimension("bhk").Valid())
	require.False(t, project.Dimension("Status").Valid())
}

func TestMatchQuery(t *testing.T) {
	p := project.Project{Name: "Lodha Amara", Location: "Kolshet Road, Thane", Builder: "Lodha Group", City: "Mumbai"}

	require.True(t, project.MatchQuery(p, ""))
	require.True(t, project.MatchQuery(p, "  "))
	require.True(t, project.MatchQuery(p, "amara"))
	require.True(t, project.MatchQuery(p, "THANE"))
	require.True(t, project.MatchQuery(p, "group"))
	require.False(t, project.MatchQuery(p, "mumbai"))
}

func TestBuildFacets(t *testing.T) {
	facets := project.BuildFacets(fixtureProjects())

	require.Equal(t, []string{"Mumbai", "Pune", "Thane"}, facets[project.DimensionCity])
	require.Equal(t, []string{"Apartment", "Villa"}, facets[project.DimensionPropertyType])
	require.Equal(t, []string{"Affordable", "Premium"}, facets[project.DimensionGroup])
	require.Equal(t, []string{"Ready to Move", "Sold Out", "Under Construction", "Upcoming"}, facets[project.DimensionStatus])

	empty := project.BuildFacets(nil)
	require.Len(t, empty, 4)
	require.Empty(t, empty[project.DimensionCity])
}

func TestBadgeClass(t *testing.T) {
	require.Equal(t, "bg-warning text-dark", project.BadgeClass(project.StatusUnderConstruction))
	require.Equal(t, "bg-success text-white", project.BadgeClass(project.StatusReadyToMove))
	require.Equal(t, "bg-info text-white", project.BadgeClass(project.StatusUpcoming))
	require.Equal(t, "bg-secondary text-white", project.BadgeClass("Sold Out"))
	require.Equal(t, "bg-secondary text-white", project.BadgeClass(""))
}
