package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) CatalogHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := queryInt(q.Get("page"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	size, err := queryInt(q.Get("size"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "catalog", h.svc.Catalog.Page(r.Context(), page, size))
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a valid number", service.ErrValidation, s)
	}
	return n, nil
}

func (h *Handler) GenerateDesignsHandler(w http.ResponseWriter, r *http.Request) {
	var in service.DesignRequest
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	designs, err := h.svc.Designs.Generate(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "designs generated", map[string]interface{}{"designs": designs})
}

func (h *Handler) RenderHandler(w http.ResponseWriter, r *http.Request) {
	var in service.RenderRequest
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	p, err := h.svc.Render.Preview(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "layout", p)
}

func (h *Handler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	var in service.RenderRequest
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	png, err := h.svc.Render.Export(r.Context(), in)
	if err != nil {
		code, msg := statusFor(err)
		if code >= http.StatusInternalServerError {
			log.Errorf("export failed: %v", err)
			msg = "Failed to export card image. Please try again."
		}
		h.CreateResponse(w, Response{Message: http.StatusText(code), Code: code, Error: msg})
		return
	}

	side := in.Side
	if side == "" {
		side = card.SideFront
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="business-card-%s.png"`, side))
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// VCardHandler returns the QR payload for the card fields in the query.
func (h *Handler) VCardHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d := card.BusinessCardData{
		Name:    q.Get("name"),
		Title:   q.Get("title"),
		Company: q.Get("company"),
		Email:   q.Get("email"),
		Phone:   q.Get("phone"),
		Website: q.Get("website"),
		Address: q.Get("address"),
	}.Trimmed()

	w.Header().Set("Content-Type", "text/vcard; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(card.VCard(d)))
}
