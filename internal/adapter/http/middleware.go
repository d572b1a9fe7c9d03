package adapthttp

import (
	"context"
	"log"
	"net/http"

	"github.com/371bohdan/Record-Play/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

const sessionCookie = "session"

// requireAuth resolves the session cookie to a user and refuses the
// request with a redirect to the login page when there is none. Expired
// sessions and sessions of deleted users count as anonymous.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.sessionUser(r)
		if user == nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionUser returns the user bound to the request's session cookie, or
// nil when the request is anonymous.
func (s *Server) sessionUser(r *http.Request) *domain.User {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	user, err := s.auth.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

// userFrom returns the authenticated user stored by requireAuth.
func userFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d", r.Method, r.URL.Path, rec.status)
	})
}
