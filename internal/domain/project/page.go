package project

import "fmt"

// DefaultPageSize is the number of projects shown per page.
const DefaultPageSize = 6

// Outcome tells a renderer what kind of page it is looking at.
type Outcome string

const (
	// OutcomeItems means the slice holds at least one project.
	OutcomeItems Outcome = "items"
	// OutcomeNoMatches means projects are loaded but none pass the predicate.
	OutcomeNoMatches Outcome = "no_matches"
	// OutcomeEmptyCatalog means the load succeeded with zero projects.
	OutcomeEmptyCatalog Outcome = "empty_catalog"
	// OutcomeLoading means a load is in flight and nothing is loaded yet.
	OutcomeLoading Outcome = "loading"
	// OutcomeNotLoaded means no load has been attempted.
	OutcomeNotLoaded Outcome = "not_loaded"
	// OutcomeLoadFailed means the last load failed.
	OutcomeLoadFailed Outcome = "load_failed"
)

// PageSlice is the current page of the filtered list plus its 1-based
// display range. Start and End are 0 when Total is 0.
type PageSlice struct {
	Outcome Outcome `json:"outcome"`
	Items   []Card  `json:"items"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
	Total   int     `json:"total"`
}

// Empty reports whether there is nothing to show.
func (s PageSlice) Empty() bool {
	return s.Outcome != OutcomeItems
}

// Summary renders the results-count line.
func (s PageSlice) Summary() string {
	if s.Total == 0 {
		return "No projects found"
	}
	return fmt.Sprintf("Showing %d-%d of %d projects", s.Start, s.End, s.Total)
}

// PageLink is one numbered pagination control.
type PageLink struct {
	Number int  `json:"number"`
	Active bool `json:"active"`
}

// Pagination describes the pagination controls for the current state.
// Hidden is set when there is at most one page; the controls are then not
// rendered at all.
type Pagination struct {
	CurrentPage  int        `json:"current_page"`
	TotalPages   int        `json:"total_pages"`
	Hidden       bool       `json:"hidden"`
	PrevDisabled bool       `json:"prev_disabled"`
	NextDisabled bool       `json:"next_disabled"`
	Pages        []PageLink `json:"pages,omitempty"`
}

// TotalPages returns ceil(total/pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func newPagination(current, total, pageSize int) Pagination {
	pages := TotalPages(total, pageSize)
	p := Pagination{
		CurrentPage:  current,
		TotalPages:   pages,
		Hidden:       pages <= 1,
		PrevDisabled: current == 1,
		NextDisabled: current == pages,
	}
	if p.Hidden {
		return p
	}
	p.Pages = make([]PageLink, pages)
	for i := range p.Pages {
		p.Pages[i] = PageLink{Number: i + 1, Active: i+1 == current}
	}
	return p
}

func slicePage(filtered []Project, page, pageSize int) PageSlice {
	total := len(filtered)
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return PageSlice{Outcome: OutcomeNoMatches, Items: []Card{}, Total: total}
	}
	end := min(start+pageSize, total)

	items := make([]Card, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, newCard(filtered[i], i, pageSize))
	}
	return PageSlice{
		Outcome: OutcomeItems,
		Items:   items,
		Start:   start + 1,
		End:     end,
		Total:   total,
	}
}
