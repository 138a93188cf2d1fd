package rest

import (
	"net/http"

	"github.com/dmitrijs2005/lifelog/internal/server/services"
	"github.com/gorilla/mux"
)

func (h *handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.categories.List(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]categoryJSON, 0, len(list))
	for _, c := range list {
		out = append(out, toCategory(c))
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: out})
}

func (h *handlers) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.categories.Get(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{Category: toCategory(c)})
}

func (h *handlers) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.categories.Create(r.Context(), userID(r), services.CategoryInput(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryResponse{Category: toCategory(c)})
}

func (h *handlers) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	c, err := h.categories.Update(r.Context(), userID(r), mux.Vars(r)["id"], services.CategoryInput(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{Category: toCategory(c)})
}

func (h *handlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "category deleted")
}
