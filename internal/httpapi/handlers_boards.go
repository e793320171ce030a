package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/service"
)

func (h *Handlers) listBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.Boards.ListBoards(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]boardResponse, 0, len(boards))
	for _, b := range boards {
		out = append(out, toBoardResponse(b))
	}
	respondJSON(w, http.StatusOK, out)
}

// createBoard takes the owner from the caller identity, falling back to
// the body's userId for unauthenticated tooling.
func (h *Handlers) createBoard(w http.ResponseWriter, r *http.Request) {
	var req createBoardRequest
	if _, err := decodeRequest(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	owner, ok := UserFromContext(r.Context())
	if !ok {
		owner = req.UserID
	}
	if owner == "" {
		h.fail(w, r, domain.Validationf("owner is required: send %s or userId", UserHeader))
		return
	}

	board, err := h.Boards.CreateBoard(r.Context(), service.CreateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     owner,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toBoardResponse(board))
}

func (h *Handlers) getBoard(w http.ResponseWriter, r *http.Request) {
	view, err := h.Boards.GetBoardDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) updateBoard(w http.ResponseWriter, r *http.Request) {
	var req updateBoardRequest
	if _, err := decodeRequest(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	board, err := h.Boards.UpdateBoard(r.Context(), chi.URLParam(r, "id"), domain.BoardPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBoardResponse(board))
}

func (h *Handlers) deleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.Boards.DeleteBoard(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
