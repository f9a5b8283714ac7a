package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cvforge/cvforge-go/internal/middleware"
	"github.com/cvforge/cvforge-go/internal/model"
	"github.com/cvforge/cvforge-go/internal/service"
)

const cvBodyLimit = 10 << 20 // 10MB, CV images may be inlined as base64

// CVHandler handles HTTP requests for CV operations.
type CVHandler struct {
	service *service.CVService
}

// NewCVHandler creates a new CVHandler.
func NewCVHandler(svc *service.CVService) *CVHandler {
	return &CVHandler{service: svc}
}

// HandleCreate handles POST /cvs requests.
func (h *CVHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authorized"))
		return
	}

	var req model.CVRequest
	if !decodeBody(w, r, cvBodyLimit, &req) {
		return
	}

	cv, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, cv)
}

// HandleList handles GET /cvs requests.
func (h *CVHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authorized"))
		return
	}

	cvs, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if cvs == nil {
		cvs = []model.CV{}
	}
	writeJSON(w, http.StatusOK, cvs)
}

// HandleGet handles GET /cvs/{id} requests.
func (h *CVHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authorized"))
		return
	}

	cv, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cv)
}

// HandleUpdate handles PUT /cvs/{id} requests.
func (h *CVHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authorized"))
		return
	}

	var req model.CVRequest
	if !decodeBody(w, r, cvBodyLimit, &req) {
		return
	}

	cv, err := h.service.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cv)
}

// HandleDelete handles DELETE /cvs/{id} requests.
func (h *CVHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authorized"))
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "CV removed"})
}

// HandlePublic handles GET /cvs/public/{id} requests. No authentication; the
// document is served only when its visibility flag is set.
func (h *CVHandler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	cv, err := h.service.GetPublic(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cv)
}

func (h *CVHandler) writeError(w http.ResponseWriter, err error) {
	var valErr *service.ValidationError
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, fieldErrorResponse(valErr.Message, valErr.Fields))
	case errors.Is(err, service.ErrCVNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotOwner):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, service.ErrCVNotPublic):
		writeJSON(w, http.StatusForbidden, errorResponse(err.Error()))
	default:
		slog.Error("cv operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("Server error"))
	}
}
