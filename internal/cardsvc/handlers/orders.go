package handlers

import (
	"net/http"

	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
	"github.com/go-chi/chi"
)

type orderRequest struct {
	Items []service.CartItemInput `json:"items"`
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var in orderRequest
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	sub, _ := claims(r)
	o, err := h.svc.Orders.Create(r.Context(), sub, in.Items)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusCreated, "order created", o)
}

func (h *Handler) ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Orders.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "orders", orders)
}

func (h *Handler) SetOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	var in statusRequest
	if err := decode(w, r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	o, err := h.svc.Orders.SetStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, "order updated", o)
}
