package table

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRows(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, Row{
			"id":     fmt.Sprintf("%d", i),
			"name":   fmt.Sprintf("item-%02d", i),
			"status": "Active",
		})
	}
	return rows
}

func nameColumns() []Column {
	return []Column{
		{Header: "Name", Key: "name"},
		{Header: "Status", Key: "status"},
	}
}

func TestPaginateRoundTrip(t *testing.T) {
	// Concatenating all pages must reproduce the filtered list exactly,
	// with no duplicates or omissions.
	for _, n := range []int{0, 1, 7, 8, 9, 25, 40} {
		for _, k := range []int{1, 3, 8} {
			opts := DefaultOptions()
			opts.RowsPerPage = k
			view := NewView(nameColumns(), makeRows(n), opts)

			first := view.Paginate(State{Page: 1})
			var collected []string
			for page := 1; page <= first.Info.TotalPages; page++ {
				res := view.Paginate(State{Page: page})
				for _, row := range res.Rows {
					collected = append(collected, row.ID())
				}
			}

			var want []string
			for _, row := range makeRows(n) {
				want = append(want, row.ID())
			}
			assert.Equal(t, want, collected, "n=%d k=%d", n, k)
		}
	}
}

func TestSearchIdempotent(t *testing.T) {
	rows := makeRows(25)
	once := Filter(rows, "item-1")
	twice := Filter(once, "item-1")
	assert.Equal(t, once, twice)
}

func TestSearchMatchesAnyFieldCaseInsensitive(t *testing.T) {
	rows := []Row{
		{"id": "1", "name": "Alpha", "email": "alpha@test.com"},
		{"id": "2", "name": "Beta", "email": "beta@test.com"},
	}
	assert.Len(t, Filter(rows, "ALPHA"), 1)
	assert.Len(t, Filter(rows, "test.com"), 2)
	assert.Len(t, Filter(rows, "gamma"), 0)
	assert.Len(t, Filter(rows, ""), 2)
}

func TestPageClamping(t *testing.T) {
	view := NewView(nameColumns(), makeRows(20), DefaultOptions())

	res := view.Paginate(State{Page: 0})
	assert.Equal(t, 1, res.Info.Page)
	assert.False(t, res.Info.HasPrev)

	res = view.Paginate(State{Page: 99})
	assert.Equal(t, res.Info.TotalPages, res.Info.Page)
	assert.False(t, res.Info.HasNext)

	res = view.Paginate(State{Page: -5})
	assert.Equal(t, 1, res.Info.Page)
}

func TestZeroFilteredRows(t *testing.T) {
	view := NewView(nameColumns(), makeRows(10), DefaultOptions())
	res := view.Paginate(State{Query: "no-such-row", Page: 3})

	assert.True(t, res.Empty)
	assert.Equal(t, 1, res.Info.TotalPages)
	assert.Equal(t, 1, res.Info.Page)
	assert.Empty(t, res.Rows)
	assert.False(t, res.Info.HasPrev)
	assert.False(t, res.Info.HasNext)
}

func TestSearchCollapsesPages(t *testing.T) {
	// 25 rows, 8 per page, query matching 3 rows: one page, all 3 shown.
	rows := makeRows(25)
	rows[2]["name"] = "needle-a"
	rows[10]["name"] = "needle-b"
	rows[20]["name"] = "needle-c"

	view := NewView(nameColumns(), rows, DefaultOptions())
	res := view.Paginate(State{Query: "needle", Page: 1})

	require.Equal(t, 1, res.Info.TotalPages)
	assert.Equal(t, 1, res.Info.Page)
	assert.Len(t, res.Rows, 3)
	assert.False(t, res.Empty)
}

func TestRowSetReplacementReclamps(t *testing.T) {
	opts := DefaultOptions()
	opts.RowsPerPage = 8
	view := NewView(nameColumns(), makeRows(25), opts)
	res := view.Paginate(State{Page: 4})
	require.Equal(t, 4, res.Info.Page)

	// Shrink the row set; the remembered page must clamp, not dangle.
	view.Rows = makeRows(9)
	res = view.Paginate(State{Page: 4})
	assert.Equal(t, 2, res.Info.TotalPages)
	assert.Equal(t, 2, res.Info.Page)
	assert.Len(t, res.Rows, 1)
}

func TestRenderFunctionAndDefaults(t *testing.T) {
	columns := []Column{
		{Header: "Name", Key: "name"},
		{Header: "Phone", Key: "phone", Render: func(v any, _ Row) string {
			if Stringify(v) == "" {
				return "—"
			}
			return Stringify(v)
		}},
	}
	rows := []Row{
		{"id": "1", "name": "Ada", "phone": ""},
		{"id": "2", "name": "Lin", "phone": "555-0100"},
	}
	view := NewView(columns, rows, DefaultOptions())
	res := view.Paginate(State{Page: 1})

	require.Len(t, res.Cells, 2)
	assert.Equal(t, []string{"Ada", "—"}, res.Cells[0])
	assert.Equal(t, []string{"Lin", "555-0100"}, res.Cells[1])
	assert.Equal(t, []string{"Name", "Phone"}, res.Headers)
}

func TestUnpaginatedViewIsOnePage(t *testing.T) {
	opts := DefaultOptions()
	opts.Paginated = false
	view := NewView(nameColumns(), makeRows(30), opts)
	res := view.Paginate(State{Page: 5})

	assert.Equal(t, 1, res.Info.TotalPages)
	assert.Len(t, res.Rows, 30)
}

func TestUnsearchableViewIgnoresQuery(t *testing.T) {
	opts := DefaultOptions()
	opts.Searchable = false
	view := NewView(nameColumns(), makeRows(5), opts)
	res := view.Paginate(State{Query: "zzz"})

	assert.Equal(t, 5, res.Info.TotalRows)
}

func TestActionsSurfaceInResult(t *testing.T) {
	opts := DefaultOptions()
	opts.Actions = Actions{Edit: true, Delete: true}
	view := NewView(nameColumns(), makeRows(2), opts)
	res := view.Paginate(State{})

	assert.True(t, res.Actions.Edit)
	assert.True(t, res.Actions.Delete)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, "plain", Stringify("plain"))
	assert.True(t, strings.HasPrefix(Stringify(3.5), "3.5"))
}
