package service

import (
	"github.com/dhriti-ai/console-gateway/internal/session"
	"github.com/dhriti-ai/console-gateway/internal/table"
	appErrors "github.com/dhriti-ai/console-gateway/pkg/errors"
	"github.com/dhriti-ai/console-gateway/pkg/export"
)

// sessionToken extracts the bearer token, failing before any upstream call
// when the session is not authenticated.
func sessionToken(sess session.Session) (string, error) {
	if !sess.Authenticated() {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "you need to log in again")
	}
	return sess.Token, nil
}

// dataset renders the whole filtered row set of a view for export,
// bypassing pagination.
func dataset(view table.View, query string) export.Dataset {
	view.Opts.Paginated = false
	res := view.Paginate(table.State{Query: query})
	return export.Dataset{Headers: res.Headers, Rows: res.Cells}
}

// dash is the placeholder cell for absent values.
const dash = "—"

func orDash(v string) string {
	if v == "" {
		return dash
	}
	return v
}
