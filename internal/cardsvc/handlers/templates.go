package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/models"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	"github.com/go-chi/chi"
)

func (h *Handler) ListTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Templates.ListPublished(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "published templates", items)
}

func (h *Handler) ListAllTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Templates.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "all templates", items)
}

func (h *Handler) GetTemplateHandler(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Templates.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "template", t)
}

func (h *Handler) CreateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	var in models.TemplateInput
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	sub, _ := claims(r)
	t, err := h.svc.Templates.Create(r.Context(), in, sub)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusCreated, "template created", t)
}

func (h *Handler) UpdateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	var in models.TemplateUpdate
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	t, err := h.svc.Templates.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "template updated", t)
}

func (h *Handler) DeleteTemplateHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "template deleted", map[string]bool{"ok": true})
}

// UploadHandler takes a multipart "file" field of at most 10MB.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(service.MaxUploadSize); err != nil {
		h.fail(w, r, fmt.Errorf("%w: file larger than 10MB or malformed form", service.ErrValidation))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.fail(w, r, fmt.Errorf("%w: no file uploaded", service.ErrValidation))
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, service.MaxUploadSize+1))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.svc.Uploads.Upload(r.Context(), header.Filename, body, r.URL.Query().Get("thumbnail") == "true")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "uploaded", res)
}
