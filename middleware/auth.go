package middleware

import (
	"net/http"
	"strings"
	"time"

	"gitea.com/go-chi/session"
	log "github.com/sirupsen/logrus"

	"github.com/blogem/crm-web/models"
	"github.com/blogem/crm-web/userctx"
)

// Session keys
const (
	SessionUserID       = "user_id"
	SessionUsername     = "username"
	SessionRole         = "role"
	SessionAccessToken  = "access_token"
	SessionTokenExpiry  = "token_expiry"
	SessionRedirectPath = "redirect_after_login"
)

// StoreUser writes the authenticated user into the session
func StoreUser(sess session.Store, user *models.User) {
	sess.Set(SessionUserID, user.ID)
	sess.Set(SessionUsername, user.Username)
	sess.Set(SessionRole, string(user.Role))
	sess.Set(SessionAccessToken, user.AccessToken)
	sess.Set(SessionTokenExpiry, user.TokenExpiry)
}

// ClearUser removes the user from the session
func ClearUser(sess session.Store) {
	for _, key := range []string{SessionUserID, SessionUsername, SessionRole, SessionAccessToken, SessionTokenExpiry} {
		sess.Delete(key)
	}
}

// SessionUser reads the user from the session, or nil when there is none
// or its token has expired
func SessionUser(sess session.Store, now time.Time) *models.User {
	id, _ := sess.Get(SessionUserID).(string)
	if id == "" {
		return nil
	}

	user := &models.User{ID: id}
	user.Username, _ = sess.Get(SessionUsername).(string)
	if role, ok := sess.Get(SessionRole).(string); ok {
		user.Role = models.Role(role)
	}
	user.AccessToken, _ = sess.Get(SessionAccessToken).(string)
	user.TokenExpiry, _ = sess.Get(SessionTokenExpiry).(int64)

	if user.TokenExpiry > 0 && now.Unix() >= user.TokenExpiry {
		return nil
	}
	return user
}

// LoadUser puts the session user, if any, into the request context
func LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := SessionUser(session.GetSession(r), time.Now()); user != nil {
			r = r.WithContext(userctx.SetUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth ensures the user is authenticated
// If not authenticated, redirects to /login and stores the intended destination
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		user := SessionUser(sess, time.Now())

		if user == nil {
			if _, ok := sess.Get(SessionUserID).(string); ok {
				log.WithField("path", r.URL.Path).Debug("Session token expired")
				ClearUser(sess)
			}

			if strings.HasPrefix(r.URL.Path, "/api/") {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			sess.Set(SessionRedirectPath, r.URL.RequestURI())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(userctx.SetUser(r.Context(), user)))
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
