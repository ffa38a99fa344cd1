// Package views turns data-access results into the page models the console
// serves: table rows, action menus, dialogs, pagination footers and the
// loading, empty and error states.
package views

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ashendes/jewelry-admin/internal/models"
)

// ActionKind tells the client how to trigger an action
type ActionKind string

// ActionKind values
const (
	ActionLink   ActionKind = "link"
	ActionSubmit ActionKind = "submit"
	ActionDialog ActionKind = "dialog"
)

// Badge is a colored label
type Badge struct {
	Text  string `json:"text"`
	Class string `json:"class"`
	Icon  string `json:"icon,omitempty"`
}

// Action is one entry of a row's action menu
type Action struct {
	Kind        ActionKind        `json:"kind"`
	Label       string            `json:"label"`
	Href        string            `json:"href"`
	Method      string            `json:"method,omitempty"`
	Body        map[string]string `json:"body,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Dialog      *Dialog           `json:"dialog,omitempty"`
	Destructive bool              `json:"destructive,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
}

// Dialog is a confirmation prompt shown before a destructive action
type Dialog struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ConfirmLabel string `json:"confirmLabel"`
	CancelLabel  string `json:"cancelLabel"`
	Action       string `json:"action"`
}

// DeleteDialog builds the confirmation for deleting one entity
func DeleteDialog(entity, noun, id, label string) *Dialog {
	return &Dialog{
		Title:        "Xác nhận xóa " + noun,
		Description:  fmt.Sprintf("Bạn có chắc chắn muốn xóa %s %q? Hành động này không thể hoàn tác.", noun, label),
		ConfirmLabel: "Xóa " + noun,
		CancelLabel:  "Hủy",
		Action:       DeletePath(entity, id) + "?confirm=true",
	}
}

// ErrorState replaces a page whose data could not be loaded
type ErrorState struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	BackHref  string `json:"backHref"`
	BackLabel string `json:"backLabel"`
}

// ListError is the error state of a list page
func ListError(entity, noun string) *ErrorState {
	return &ErrorState{
		Title:     "Lỗi tải dữ liệu",
		Message:   "Không thể tải danh sách " + noun + ". Vui lòng thử lại.",
		BackHref:  ListPath(entity),
		BackLabel: "Thử lại",
	}
}

// DetailError is the error state of a detail or edit page
func DetailError(entity, noun string) *ErrorState {
	return &ErrorState{
		Title:     "Lỗi tải dữ liệu",
		Message:   "Không thể tải thông tin " + noun + ". Vui lòng thử lại.",
		BackHref:  ListPath(entity),
		BackLabel: "Quay lại danh sách",
	}
}

// NotFound is the error state of a detail page whose entity does not exist
func NotFound(entity, noun string) *ErrorState {
	return &ErrorState{
		Title:     "Không tìm thấy " + noun,
		Message:   "Không tìm thấy " + noun + " bạn yêu cầu.",
		BackHref:  ListPath(entity),
		BackLabel: "Quay lại danh sách",
	}
}

// EmptyState is shown instead of an empty table
type EmptyState struct {
	Message string `json:"message"`
	Icon    string `json:"icon,omitempty"`
}

// footerPages is how many page links the footer offers
const footerPages = 5

// Footer is the pagination bar under a table
type Footer struct {
	Text       string `json:"text"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Pages      []int  `json:"pages"`
	PrevHref   string `json:"prevHref,omitempty"`
	NextHref   string `json:"nextHref,omitempty"`
}

// NewFooter describes p for a list at path. It returns nil when there is a single page.
func NewFooter(path, noun string, p models.Pagination, params models.ListParams) *Footer {
	if p.TotalPages <= 1 {
		return nil
	}

	first, last := 0, 0
	if n := p.Window(); n > 0 {
		first = p.Offset() + 1
		last = p.Offset() + n
	}

	f := &Footer{
		Text:       fmt.Sprintf("Hiển thị %d - %d trong tổng số %d %s", first, last, p.Total, noun),
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Pages:      pageWindow(p.Page, p.TotalPages),
	}
	if p.HasPrevPage {
		f.PrevHref = pageHref(path, params, p.Page-1, p.Limit)
	}
	if p.HasNextPage {
		f.NextHref = pageHref(path, params, p.Page+1, p.Limit)
	}
	return f
}

// pageWindow lists at most footerPages page numbers centered on page
func pageWindow(page, totalPages int) []int {
	start := page - footerPages/2
	if start > totalPages-footerPages+1 {
		start = totalPages - footerPages + 1
	}
	if start < 1 {
		start = 1
	}
	end := start + footerPages - 1
	if end > totalPages {
		end = totalPages
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

func pageHref(path string, params models.ListParams, page, limit int) string {
	q := params.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return path + "?" + q.Encode()
}

// ListPath is the console path of an entity list
func ListPath(entity string) string {
	return "/" + entity
}

// DetailPath is the console path of an entity detail page
func DetailPath(entity, id string) string {
	return "/" + entity + "/detail/" + escape(id)
}

// EditPath is the console path of an entity edit form
func EditPath(entity, id string) string {
	return "/" + entity + "/edit/" + escape(id)
}

// DeletePath is the console path that deletes an entity
func DeletePath(entity, id string) string {
	return "/" + entity + "/delete/" + escape(id)
}

func escape(id string) string {
	return url.PathEscape(id)
}
