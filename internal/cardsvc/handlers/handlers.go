package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

// maxJSONBody bounds request bodies; logos may arrive as data uris.
const maxJSONBody = 5 << 20

// Services is everything the HTTP layer talks to.
type Services struct {
	Auth      *service.AuthService
	Templates *service.TemplateService
	Catalog   *service.CatalogService
	Contacts  *service.ContactService
	Uploads   *service.UploadService
	Designs   *service.DesignService
	Render    *service.RenderService
	Orders    *service.OrderService
}

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	svc       Services
}

func NewHandler(s Services) *Handler {
	return &Handler{tokenAuth: s.Auth.TokenAuth(), svc: s}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (rs *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	json.NewEncoder(w).Encode(rsp)
}

func (h *Handler) ok(w http.ResponseWriter, code int, msg string, data interface{}) {
	h.CreateResponse(w, Response{Message: msg, Code: code, Data: data})
}

// fail maps err to a status and writes it. Internal errors are logged and
// their text is not sent to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.WithField("request", r.Method+" "+r.URL.Path).Errorf("request failed: %v", err)
	}
	h.CreateResponse(w, Response{Message: http.StatusText(code), Code: code, Error: msg})
}

// statusFor is the single place service errors become HTTP codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrPremiumLocked):
		return http.StatusPaymentRequired, err.Error()
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."
	case errors.Is(err, service.ErrPaymentRequired):
		return http.StatusPaymentRequired, "Payment required. Please add credits to continue."
	case errors.Is(err, service.ErrMalformedDesigns):
		return http.StatusBadGateway, "Failed to generate designs: malformed AI response"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", service.ErrValidation)
	}
	return nil
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.ok(w, http.StatusOK, "card service is running at port "+os.Getenv("CARD_SERVICE_PORT"), map[string]bool{"ok": true})
}
