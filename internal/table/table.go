// Package table implements the generic tabular view used by every console
// screen: a filterable, searchable, paginated grid over an in-memory row set.
package table

import (
	"fmt"
	"strings"
)

// Row is a generic data item keyed by column accessors. Rows are identified
// by their "id" value; slice order defines display order.
type Row map[string]any

// ID returns the row identity as a string, or "" when absent.
func (r Row) ID() string {
	v, ok := r["id"]
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Column describes one grid column.
type Column struct {
	Header string
	Key    string
	// Render overrides the default string conversion for a cell.
	Render func(value any, row Row) string
	Align  string
}

// Actions advertises the row-level capabilities a view exposes.
type Actions struct {
	Edit   bool
	Delete bool
}

// Options configures view behaviour.
type Options struct {
	Searchable  bool
	Paginated   bool
	RowsPerPage int
	Actions     Actions
}

// DefaultOptions mirrors the console defaults: searchable, paginated,
// eight rows per page.
func DefaultOptions() Options {
	return Options{Searchable: true, Paginated: true, RowsPerPage: 8}
}

// View binds columns, rows and options into a renderable grid.
type View struct {
	Columns []Column
	Rows    []Row
	Opts    Options
}

// NewView builds a view, normalising zero-value options.
func NewView(columns []Column, rows []Row, opts Options) View {
	if opts.RowsPerPage <= 0 {
		opts.RowsPerPage = DefaultOptions().RowsPerPage
	}
	return View{Columns: columns, Rows: rows, Opts: opts}
}

// State is the client-controlled part of a view: search query and page.
type State struct {
	Query string
	Page  int
}

// PageInfo is the pagination metadata attached to a rendered page.
type PageInfo struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	TotalRows  int  `json:"total_rows"`
	PerPage    int  `json:"per_page"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Result is one rendered page of a view.
type Result struct {
	Headers []string   `json:"headers"`
	Rows    []Row      `json:"rows"`
	Cells   [][]string `json:"cells"`
	Info    PageInfo   `json:"info"`
	Empty   bool       `json:"empty"`
	Actions Actions    `json:"actions"`
	// Stale marks rows served from the last successful load because the
	// latest refresh failed.
	Stale bool `json:"stale,omitempty"`
}

// Stringify converts an arbitrary cell value to its display form.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Matches reports whether any field of the row contains the query,
// case-insensitive. An empty query matches everything.
func Matches(row Row, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, v := range row {
		if strings.Contains(strings.ToLower(Stringify(v)), q) {
			return true
		}
	}
	return false
}

// Filter returns the rows matching the query, preserving order.
func Filter(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if Matches(row, query) {
			out = append(out, row)
		}
	}
	return out
}

// TotalPages computes the page count for a filtered set, never below one.
func TotalPages(totalRows, perPage int) int {
	if perPage <= 0 {
		perPage = 1
	}
	pages := (totalRows + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage confines a requested page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate renders one page of the view for the given state. Search is
// ignored when the view is not searchable; pagination collapses to a single
// page when disabled. Replacing the row set between calls is safe: the page
// is reclamped against the new total on every render.
//
// The engine is stateless, so it cannot tell a changed query from a repeated
// one; clients reset to page 1 when they edit the search box, and clamping
// bounds any stale page they send instead.
func (v View) Paginate(state State) Result {
	rows := v.Rows
	if v.Opts.Searchable {
		rows = Filter(rows, state.Query)
	}

	perPage := v.Opts.RowsPerPage
	if !v.Opts.Paginated {
		perPage = len(rows)
		if perPage == 0 {
			perPage = 1
		}
	}

	totalPages := TotalPages(len(rows), perPage)
	page := ClampPage(state.Page, totalPages)

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	pageRows := rows[start:end]

	headers := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		headers[i] = col.Header
	}

	cells := make([][]string, len(pageRows))
	for i, row := range pageRows {
		rendered := make([]string, len(v.Columns))
		for j, col := range v.Columns {
			value := row[col.Key]
			if col.Render != nil {
				rendered[j] = col.Render(value, row)
			} else {
				rendered[j] = Stringify(value)
			}
		}
		cells[i] = rendered
	}

	return Result{
		Headers: headers,
		Rows:    pageRows,
		Cells:   cells,
		Info: PageInfo{
			Page:       page,
			TotalPages: totalPages,
			TotalRows:  len(rows),
			PerPage:    perPage,
			HasPrev:    page > 1,
			HasNext:    page < totalPages,
		},
		Empty:   len(pageRows) == 0,
		Actions: v.Opts.Actions,
	}
}
