package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/repositories"
	"github.com/blogem/crm-web/userctx"
)

const redacted = "[REDACTED]"

var sensitiveFields = []string{"password", "token", "secret"}

// Free-text fields are journaled by length only
var freeTextFields = map[string]bool{"comment": true}

// RequestJournal records mutating requests (and logout) in the local journal
func RequestJournal(repo repositories.RequestLogRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldJournal(r) {
				entry := &models.RequestLogEntry{
					Username:  userctx.GetUsername(r.Context()),
					Method:    r.Method,
					Path:      r.URL.Path,
					UserAgent: r.UserAgent(),
					IPAddress: getIPAddress(r),
					FormData:  captureFormData(r),
				}
				requestID := userctx.GetRequestID(r.Context())

				// Log asynchronously to avoid blocking request
				go func() {
					if err := repo.Create(entry); err != nil {
						log.WithField("request_id", requestID).WithError(err).Error("Failed to write request journal entry")
					}
				}()
			}

			next.ServeHTTP(w, r)
		})
	}
}

func shouldJournal(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return r.URL.Path == "/logout"
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first
func getIPAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// captureFormData captures form data as JSON with sensitive fields redacted
func captureFormData(r *http.Request) string {
	if err := r.ParseForm(); err != nil || len(r.PostForm) == 0 {
		return ""
	}

	formMap := make(map[string]any, len(r.PostForm))
	for key, values := range r.PostForm {
		switch {
		case isSensitiveField(key):
			formMap[key] = redacted
		case freeTextFields[strings.ToLower(key)]:
			formMap[key] = fmt.Sprintf("[%d chars]", utf8.RuneCountInString(strings.Join(values, "")))
		case len(values) == 1:
			formMap[key] = values[0]
		default:
			formMap[key] = values
		}
	}

	jsonData, err := json.Marshal(formMap)
	if err != nil {
		return ""
	}
	return string(jsonData)
}

func isSensitiveField(key string) bool {
	lower := strings.ToLower(key)
	for _, field := range sensitiveFields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}
