package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/kanban/internal/domain"
)

func (h *Handlers) createColumn(w http.ResponseWriter, r *http.Request) {
	var req createColumnRequest
	if _, err := decodeRequest(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	column, err := h.Columns.CreateColumn(r.Context(), req.BoardID, req.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toColumnResponse(column))
}

func (h *Handlers) updateColumn(w http.ResponseWriter, r *http.Request) {
	var req updateColumnRequest
	if _, err := decodeRequest(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	column, err := h.Columns.UpdateColumn(r.Context(), chi.URLParam(r, "id"), domain.ColumnPatch{
		Name:    req.Name,
		Ordinal: req.Order,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toColumnResponse(column))
}

func (h *Handlers) deleteColumn(w http.ResponseWriter, r *http.Request) {
	if err := h.Columns.DeleteColumn(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
