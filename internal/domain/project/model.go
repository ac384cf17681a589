package project

// Project is a single listing as it appears in the source document.
// Fields are opaque display strings; only Name, Location and Builder are
// searched and only the four dimension fields are filtered on.
type Project struct {
	Name         string `json:"name"`
	Image        string `json:"image"`
	Status       string `json:"status"`
	Location     string `json:"location"`
	Builder      string `json:"builder"`
	BHK          string `json:"bhk"`
	PriceRange   string `json:"priceRange"`
	PropertyType string `json:"propertyType"`
	Group        string `json:"group"`
	City         string `json:"city"`
	DetailsURL   string `json:"detailsUrl"`
}

// Known status values. Status is an open set; anything else is allowed.
const (
	StatusUnderConstruction = "Under Construction"
	StatusReadyToMove       = "Ready to Move"
	StatusUpcoming          = "Upcoming"
)

// BadgeClass returns the badge style for a status value.
func BadgeClass(status string) string {
	switch status {
	case StatusUnderConstruction:
		return "bg-warning text-dark"
	case StatusReadyToMove:
		return "bg-success text-white"
	case StatusUpcoming:
		return "bg-info text-white"
	default:
		return "bg-secondary text-white"
	}
}

// Card is a page item ready for a renderer.
type Card struct {
	Project
	Index            int    `json:"index"`
	BadgeClass       string `json:"badge_class"`
	AnimationDelayMS int    `json:"animation_delay_ms"`
}

func newCard(p Project, index, pageSize int) Card {
	return Card{
		Project:          p,
		Index:            index,
		BadgeClass:       BadgeClass(p.Status),
		AnimationDelayMS: (index%pageSize)*100 + 100,
	}
}
