package views

import (
	"github.com/ashendes/jewelry-admin/internal/access"
	"github.com/ashendes/jewelry-admin/internal/apiclient"
	"github.com/ashendes/jewelry-admin/internal/models"
)

// Pending reports whether a row has a mutation outstanding
type Pending func(id string) bool

// ListPage is the model of one list screen
type ListPage[R any] struct {
	Title     string            `json:"title"`
	Heading   string            `json:"heading"`
	CreateURL string            `json:"createUrl,omitempty"`
	Rows      []R               `json:"rows"`
	Loading   bool              `json:"loading"`
	Fetching  bool              `json:"fetching"`
	Empty     *EmptyState       `json:"empty,omitempty"`
	Error     *ErrorState       `json:"error,omitempty"`
	Footer    *Footer           `json:"footer,omitempty"`
	Params    models.ListParams `json:"params"`
	Total     int               `json:"total"`
}

// DetailPage is the model of one detail or edit screen
type DetailPage[D any] struct {
	Title    string      `json:"title"`
	Item     *D          `json:"item,omitempty"`
	Actions  []Action    `json:"actions,omitempty"`
	Loading  bool        `json:"loading"`
	Disabled bool        `json:"disabled,omitempty"`
	Error    *ErrorState `json:"error,omitempty"`
	BackHref string      `json:"backHref"`
}

// Screen names one entity's list for display
type Screen struct {
	Entity  string
	Noun    string
	Title   string
	Empty   string
	Creates bool
}

// BuildList renders res with row, adding the states a list page can be in
func BuildList[T, R any](s Screen, params models.ListParams, res access.ListResult[T], row func(T) R) ListPage[R] {
	page := ListPage[R]{
		Title:    s.Title,
		Heading:  s.Title,
		Rows:     make([]R, 0, len(res.Items)),
		Loading:  res.Loading,
		Fetching: res.Fetching,
		Params:   params,
	}
	if s.Creates {
		page.CreateURL = "/" + s.Entity + "/create"
	}

	if res.Err != nil {
		page.Error = ListError(s.Entity, s.Noun)
		return page
	}

	for _, item := range res.Items {
		page.Rows = append(page.Rows, row(item))
	}
	if res.Pagination != nil {
		page.Total = res.Pagination.Total
		page.Footer = NewFooter(ListPath(s.Entity), s.Noun, *res.Pagination, params)
	}
	if len(page.Rows) == 0 && !res.Loading {
		page.Empty = &EmptyState{Message: s.Empty, Icon: "package"}
	}
	return page
}

// BuildDetail renders res with detail, mapping a missing entity and read errors to their states
func BuildDetail[T, D any](s Screen, title string, res access.DetailResult[T], detail func(T) D, actions func(T) []Action) DetailPage[D] {
	page := DetailPage[D]{
		Title:    title,
		Loading:  res.Loading,
		Disabled: res.Disabled,
		BackHref: ListPath(s.Entity),
	}

	switch {
	case res.Err != nil && apiclient.IsNotFound(res.Err):
		page.Error = NotFound(s.Entity, s.Noun)
	case res.Err != nil:
		page.Error = DetailError(s.Entity, s.Noun)
	case res.Entity != nil:
		d := detail(*res.Entity)
		page.Item = &d
		if actions != nil {
			page.Actions = actions(*res.Entity)
		}
	}
	return page
}
