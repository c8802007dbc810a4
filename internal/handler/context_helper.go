package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dhriti-ai/console-gateway/internal/models"
	"github.com/dhriti-ai/console-gateway/internal/table"
)

// tableState reads the view-state query parameters: "q" for search, "page"
// for the requested page. Out-of-range pages are clamped by the table.
func tableState(c *gin.Context) table.State {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	return table.State{Query: c.Query("q"), Page: page}
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// tabRoles maps the /users sub-tabs to the role they filter on.
var tabRoles = map[string]models.Role{
	"admins":  models.RoleAdmin,
	"experts": models.RoleExpert,
	"vendors": models.RoleVendor,
}

func roleForTab(tab string) (models.Role, bool) {
	role, ok := tabRoles[tab]
	return role, ok
}
