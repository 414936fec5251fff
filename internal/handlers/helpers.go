package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"invoiceapp/internal/auth"
	"invoiceapp/internal/httpx"
	"invoiceapp/internal/services"
)

// currentUserID extracts the authenticated user id; RequireAuth middleware
// guarantees it is set on every protected route.
func currentUserID(r *http.Request) (uint, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	return uid, ok && uid != 0
}

func decodeJSON(r *http.Request) (map[string]any, error) {
	data := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps service errors onto the API's error taxonomy:
// validation 400, not-found 404 (ownership misses included), everything
// else a generic 500.
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, notFoundMsg)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
