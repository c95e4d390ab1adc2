package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/authenticator"
	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/services"
	"github.com/blogem/crm-web/templates"
	"github.com/blogem/crm-web/userctx"
)

// Layout is the data every page shares with layout.html
type Layout struct {
	Title          string
	CurrentPage    string
	User           *models.User
	Flash          *models.FlashMessage
	RefreshSeconds int
}

func newLayout(r *http.Request, title, currentPage string) Layout {
	return Layout{
		Title:       title,
		CurrentPage: currentPage,
		User:        userctx.GetUser(r.Context()),
	}
}

var templateFuncs = template.FuncMap{
	"add":        func(a, b int) int { return a + b },
	"sub":        func(a, b int) int { return a - b },
	"formatTime": models.FormatDateTime,
}

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	tmpl, err := template.New(templateName).Funcs(templateFuncs).ParseFS(templates.FS, "layout.html", pageTemplate)
	if err != nil {
		log.WithField("template", pageTemplate).WithError(err).Error("Failed to parse template")
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.WithField("template", pageTemplate).WithError(err).Error("Failed to render template")
		return err
	}

	return nil
}

// renderError shows a standalone error page
func renderError(w http.ResponseWriter, r *http.Request, statusCode int, heading, message string) {
	templateData := struct {
		Layout
		Heading string
		Message string
	}{
		Layout:  newLayout(r, heading, ""),
		Heading: heading,
		Message: message,
	}

	renderTemplateWithStatus(w, statusCode, "error", "error.html", templateData)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode JSON response")
	}
}

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Dashboard *DashboardController
	Timeline  *TimelineController
	Activity  *ActivityController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, provider authenticator.Provider, roleClaim string) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(provider, roleClaim),
		Dashboard: NewDashboardController(services),
		Timeline:  NewTimelineController(services),
		Activity:  NewActivityController(services),
	}
}
