package controllers

import (
	"net/http"

	"github.com/blogem/crm-web/access"
	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/services"
)

// DashboardController handles dashboard-related requests
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Index handles GET /
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	layout := newLayout(r, "Dashboard", "dashboard")

	var types []models.EntityType
	for _, t := range models.EntityTypes() {
		if access.CanViewAuditHistory(layout.User.RoleOrNone(), t) {
			types = append(types, t)
		}
	}

	templateData := struct {
		Layout
		EntityTypes []models.EntityType
	}{
		Layout:      layout,
		EntityTypes: types,
	}

	renderTemplate(w, "dashboard", "dashboard.html", templateData)
}
