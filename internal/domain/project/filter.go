package project

import (
	"slices"
	"strings"
)

// Dimension names a categorical filter key.
type Dimension string

const (
	DimensionStatus       Dimension = "status"
	DimensionPropertyType Dimension = "propertyType"
	DimensionGroup        Dimension = "group"
	DimensionCity         Dimension = "city"
)

// Dimensions lists every filter dimension in display order.
func Dimensions() []Dimension {
	return []Dimension{DimensionStatus, DimensionPropertyType, DimensionGroup, DimensionCity}
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionStatus, DimensionPropertyType, DimensionGroup, DimensionCity:
		return true
	default:
		return false
	}
}

// Value returns the project field a dimension filters on.
func (d Dimension) Value(p Project) string {
	switch d {
	case DimensionStatus:
		return p.Status
	case DimensionPropertyType:
		return p.PropertyType
	case DimensionGroup:
		return p.Group
	case DimensionCity:
		return p.City
	default:
		return ""
	}
}

// Filters holds the selected value per dimension. An empty value means no
// constraint on that dimension.
type Filters struct {
	Status       string `json:"status"`
	PropertyType string `json:"propertyType"`
	Group        string `json:"group"`
	City         string `json:"city"`
}

// Get returns the selected value for d.
func (f Filters) Get(d Dimension) string {
	switch d {
	case DimensionStatus:
		return f.Status
	case DimensionPropertyType:
		return f.PropertyType
	case DimensionGroup:
		return f.Group
	case DimensionCity:
		return f.City
	default:
		return ""
	}
}

// With returns a copy of f with d set to value. Unknown dimensions leave f
// unchanged and report false.
func (f Filters) With(d Dimension, value string) (Filters, bool) {
	switch d {
	case DimensionStatus:
		f.Status = value
	case DimensionPropertyType:
		f.PropertyType = value
	case DimensionGroup:
		f.Group = value
	case DimensionCity:
		f.City = value
	default:
		return f, false
	}
	return f, true
}

// IsZero reports whether no dimension is constrained.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Match keeps p iff every constrained dimension equals p's field exactly.
func (f Filters) Match(p Project) bool {
	for _, d := range Dimensions() {
		want := f.Get(d)
		if want != "" && d.Value(p) != want {
			return false
		}
	}
	return true
}

// Apply returns the projects matching f, in input order.
func (f Filters) Apply(projects []Project) []Project {
	return keep(projects, f.Match)
}

// MatchQuery reports whether the project's name, location or builder
// contains query, ignoring case. A blank query matches everything.
func MatchQuery(p Project, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Location), q) ||
		strings.Contains(strings.ToLower(p.Builder), q)
}

// SearchProjects returns the projects matching query, in input order.
func SearchProjects(projects []Project, query string) []Project {
	return keep(projects, func(p Project) bool { return MatchQuery(p, query) })
}

// Facets maps each dimension to its distinct non-empty values, sorted.
type Facets map[Dimension][]string

// BuildFacets collects the selectable values of every dimension.
func BuildFacets(projects []Project) Facets {
	facets := make(Facets, len(Dimensions()))
	for _, d := range Dimensions() {
		values := []string{}
		for _, p := range projects {
			if v := d.Value(p); v != "" {
				values = append(values, v)
			}
		}
		slices.Sort(values)
		facets[d] = slices.Compact(values)
	}
	return facets
}

func keep(projects []Project, pred func(Project) bool) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
