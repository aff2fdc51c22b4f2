package handlers

import (
	"net/http"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SubmitContactHandler(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	m, err := h.svc.Contacts.Submit(r.Context(), in)
	if err != nil && m == nil {
		h.fail(w, r, err)
		return
	}
	if err != nil {
		// stored but not forwarded; admins still see it in the inbox
		log.Warnf("contact message stored without notification: %v", err)
	}
	h.ok(w, http.StatusCreated, "message received", map[string]interface{}{"ok": true, "id": m.ID.Hex()})
}

func (h *Handler) ListContactHandler(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Contacts.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "contact messages", msgs)
}

func (h *Handler) MarkContactReadHandler(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Contacts.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "marked read", m)
}
