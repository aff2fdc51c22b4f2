package handlers

import (
	"net/http"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	"github.com/go-chi/jwtauth"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.svc.Auth.Signup(r.Context(), in.Email, in.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusCreated, "signed up", s)
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	s, err := h.svc.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "logged in", s)
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	sub, _ := claims(r)
	u, err := h.svc.Auth.User(r.Context(), sub)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "current user", u.View())
}

// claims reads sub and role from a verified token.
func claims(r *http.Request) (sub, role string) {
	_, c, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", ""
	}
	sub, _ = c["sub"].(string)
	role, _ = c["role"].(string)
	return sub, role
}

// AdminOnly rejects authenticated non-admins with 403.
func (h *Handler) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, role := claims(r); role != models.RoleAdmin {
			h.fail(w, r, service.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
