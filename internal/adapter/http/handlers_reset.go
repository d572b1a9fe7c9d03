package adapthttp

import (
	"errors"
	"net/http"

	"github.com/371bohdan/Record-Play/internal/app"
)

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		render(w, http.StatusOK, "forgot_password", map[string]any{"Message": popFlash(w, r)})
	case http.MethodPost:
		_, err := s.reset.Issue(r.Context(), r.FormValue("email"))
		if err != nil && !errors.Is(err, app.ErrInvalidResetToken) {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		// Token delivery happens out of band; the response is identical
		// whether or not the account exists.
		render(w, http.StatusOK, "forgot_password", map[string]any{
			"Message": "If that account exists, a reset link has been sent.",
		})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	switch r.Method {
	case http.MethodGet:
		user, err := s.reset.UserForToken(r.Context(), token)
		if err != nil {
			http.Redirect(w, r, "/forgot-password", http.StatusFound)
			return
		}
		render(w, http.StatusOK, "reset_password", map[string]any{
			"Username": user.Username,
			"Token":    token,
		})
	case http.MethodPost:
		err := s.reset.CompleteReset(r.Context(), token, r.FormValue("password"), r.FormValue("password2"))
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			user, terr := s.reset.UserForToken(r.Context(), token)
			if terr != nil {
				http.Redirect(w, r, "/forgot-password", http.StatusFound)
				return
			}
			render(w, http.StatusOK, "reset_password", map[string]any{
				"Username": user.Username,
				"Token":    token,
				"Error":    ve.Message,
			})
			return
		}
		if err != nil {
			http.Redirect(w, r, "/forgot-password", http.StatusFound)
			return
		}
		setFlash(w, "Password updated, please log in")
		http.Redirect(w, r, "/login", http.StatusFound)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
