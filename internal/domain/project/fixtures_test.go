package project_test

import (
	"context"
	"fmt"

	"github.com/rpggio/listings/internal/domain/project"
)

// fixtureProjects returns 14 projects: 3 Ready to Move, 2 located in Thane.
func fixtureProjects() []project.Project {
	statuses := []string{
		project.StatusUnderConstruction, project.StatusReadyToMove, project.StatusUpcoming,
		project.StatusUnderConstruction, "Sold Out", project.StatusUnderConstruction,
		project.StatusReadyToMove, project.StatusUpcoming, project.StatusUnderConstruction,
		project.StatusUpcoming, project.StatusReadyToMove, project.StatusUnderConstruction,
		project.StatusUpcoming, project.StatusUnderConstruction,
	}
	builders := []string{"Lodha", "Godrej", "Runwal"}

	projects := make([]project.Project, len(statuses))
	for i, status := range statuses {
		location, city := "Andheri, Mumbai", "Mumbai"
		if i%2 == 1 {
			location, city = "Baner, Pune", "Pune"
		}
		switch i {
		case 2:
			location, city = "Ghodbunder Road, Thane", "Thane"
		case 8:
			location, city = "Thane West", "Thane"
		}
		propertyType := "Apartment"
		if i%3 == 0 {
			propertyType = "Villa"
		}
		group := "Affordable"
		if i%2 == 0 {
			group = "Premium"
		}
		projects[i] = project.Project{
			Name:         fmt.Sprintf("Project %02d", i+1),
			Image:        fmt.Sprintf("images/project-%02d.webp", i+1),
			Status:       status,
			Location:     location,
			Builder:      builders[i%3],
			BHK:          "2, 3 BHK",
			PriceRange:   "₹1.2 Cr - ₹2.5 Cr",
			PropertyType: propertyType,
			Group:        group,
			City:         city,
			DetailsURL:   fmt.Sprintf("project-%02d.html", i+1),
		}
	}
	return projects
}

func staticSource(projects []project.Project) project.Source {
	return project.SourceFunc(func(_ context.Context) ([]project.Project, error) {
		return projects, nil
	})
}

func names(projects []project.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

func cardNames(cards []project.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}
