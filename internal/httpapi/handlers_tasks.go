package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/kanban/internal/domain"
	"github.com/alexanderramin/kanban/internal/imagestore"
	"github.com/alexanderramin/kanban/internal/service"
)

func (h *Handlers) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if _, err := decodeRequest(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	in := service.CreateTaskInput{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
	}
	if id, ok := UserFromContext(r.Context()); ok {
		in.CreatorID = &id
	}
	if req.Image != nil {
		upload, err := decodeImage(*req.Image)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		in.Image = upload
	}

	task, err := h.Tasks.CreateTask(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *Handlers) updateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	body, err := decodeRequest(w, r, &req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	image, err := imagePatchFromBody(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.Tasks.UpdateTask(r.Context(), chi.URLParam(r, "id"), domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		Ordinal:     req.Order,
		Image:       image,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *Handlers) moveTask(w http.ResponseWriter, r *http.Request) {
	var req moveTaskRequest
	if _, err := decodeRequest(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	task, err := h.Tasks.MoveTask(r.Context(), chi.URLParam(r, "id"), req.ColumnID, req.Order)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *Handlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Tasks.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *Handlers) getImage(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if !imagestore.ValidRef(ref) {
		h.fail(w, r, domain.Validationf("image reference %q is malformed", ref))
		return
	}
	img, err := h.Images.Get(r.Context(), ref)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}
