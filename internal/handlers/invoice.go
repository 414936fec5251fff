package handlers

import (
	"net/http"

	"invoiceapp/internal/httpx"
	"invoiceapp/internal/services"
)

const invoiceNotFound = "Invoice not found"

type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// List: GET /api/invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	invoices, err := h.Svc.List(uid)
	if err != nil {
		writeServiceError(w, err, invoiceNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

// Get: GET /api/invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, invoiceNotFound)
		return
	}
	invoice, err := h.Svc.Get(uid, id)
	if err != nil {
		writeServiceError(w, err, invoiceNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoice": invoice})
}

// Create: POST /api/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	data, err := decodeJSON(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	invoice, err := h.Svc.Create(uid, data)
	if err != nil {
		writeServiceError(w, err, invoiceNotFound)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "Invoice created successfully",
		"invoice": invoice,
	})
}

// Update: PUT /api/invoices/{id}
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, invoiceNotFound)
		return
	}
	data, err := decodeJSON(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	invoice, err := h.Svc.Update(uid, id, data)
	if err != nil {
		writeServiceError(w, err, invoiceNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "Invoice updated successfully",
		"invoice": invoice,
	})
}

// Delete: DELETE /api/invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(r)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "Authorization token is required")
		return
	}
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, invoiceNotFound)
		return
	}
	if err := h.Svc.Delete(uid, id); err != nil {
		writeServiceError(w, err, invoiceNotFound)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "Invoice deleted successfully"})
}
