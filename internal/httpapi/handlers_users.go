package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if _, err := decodeRequest(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	user, err := h.Users.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(user))
}

// deleteUser honours ?reassignTo= for boards the user owns.
func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	var reassignTo *string
	if v := r.URL.Query().Get("reassignTo"); v != "" {
		reassignTo = &v
	}
	if err := h.Users.DeleteUser(r.Context(), chi.URLParam(r, "id"), reassignTo); err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
