package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"gitea.com/go-chi/session"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/authenticator"
	"github.com/blogem/crm-web/middleware"
)

const sessionState = "state"

// AuthController handles the OpenID Connect login flow
type AuthController struct {
	provider  authenticator.Provider
	roleClaim string
}

// NewAuthController creates a new auth controller. A nil provider disables login.
func NewAuthController(provider authenticator.Provider, roleClaim string) *AuthController {
	return &AuthController{provider: provider, roleClaim: roleClaim}
}

// Login handles GET /login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if ac.provider == nil {
		renderError(w, r, http.StatusServiceUnavailable, "Login unavailable", "No identity provider is configured.")
		return
	}

	state, err := generateRandomState()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set(sessionState, state)

	http.Redirect(w, r, ac.provider.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles GET /callback from the identity provider
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	if ac.provider == nil {
		renderError(w, r, http.StatusServiceUnavailable, "Login unavailable", "No identity provider is configured.")
		return
	}

	sess := session.GetSession(r)

	storedState, _ := sess.Get(sessionState).(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}
	sess.Delete(sessionState)

	token, err := ac.provider.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.WithError(err).Warn("Failed to exchange authorization code")
		http.Error(w, "Failed to exchange authorization code for a token", http.StatusUnauthorized)
		return
	}

	claims, err := ac.provider.GetClaims(r.Context(), token)
	if err != nil {
		log.WithError(err).Warn("Failed to verify ID token")
		http.Error(w, "Failed to verify ID Token", http.StatusUnauthorized)
		return
	}

	user, err := authenticator.UserFromClaims(claims, token, ac.roleClaim)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	middleware.StoreUser(sess, user)

	log.WithFields(log.Fields{
		"username": user.Username,
		"role":     user.Role,
	}).Info("User logged in")

	target := "/"
	if stored, ok := sess.Get(middleware.SessionRedirectPath).(string); ok && isLocalPath(stored) {
		target = stored
	}
	sess.Delete(middleware.SessionRedirectPath)

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout handles GET /logout
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if err := sess.Destroy(w, r); err != nil {
		log.WithError(err).Warn("Failed to destroy session")
		middleware.ClearUser(sess)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// isLocalPath accepts only same-origin absolute paths
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
