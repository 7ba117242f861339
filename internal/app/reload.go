package app

import "nyt_movies/internal/domain"

// Category is one of the independently paged lists.
type Category int

const (
	CategoryReviews Category = iota
	CategoryCritics
)

func (c Category) String() string {
	switch c {
	case CategoryReviews:
		return "reviews"
	case CategoryCritics:
		return "critics"
	}
	return "unknown"
}

// ReloadKind tags what changed and how a view should redraw.
type ReloadKind int

const (
	ReloadReplace ReloadKind = iota
	ReloadAppend
	ReloadError
	ReloadNoResults
	ReloadCategorySwitch
)

func (k ReloadKind) String() string {
	switch k {
	case ReloadReplace:
		return "replace"
	case ReloadAppend:
		return "append"
	case ReloadError:
		return "error"
	case ReloadNoResults:
		return "no_results"
	case ReloadCategorySwitch:
		return "category_switch"
	}
	return "unknown"
}

// Reload is the one signal coordinators hand to the view.
//
// Count is the number of visible items after the change, Added the number of
// items a page appended. Err is set only for ReloadError.
type Reload struct {
	Kind     ReloadKind
	Category Category
	Count    int
	Added    int
	Err      error
}

// Message is the user-facing text for the reload, empty when there is nothing to say.
func (r Reload) Message() string {
	switch r.Kind {
	case ReloadError:
		return domain.UserMessage(r.Err)
	case ReloadNoResults:
		return "No results"
	}
	return ""
}

type Renderer interface {
	Render(Reload)
}

// RenderFunc adapts a plain function to Renderer.
type RenderFunc func(Reload)

func (f RenderFunc) Render(r Reload) { f(r) }
