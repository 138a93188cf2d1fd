package rest

import (
	"net/http"

	"github.com/dmitrijs2005/lifelog/internal/server/services"
)

// updateProfile takes a multipart form with optional user_name and avatar.
func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer form.cleanup()

	var upd services.ProfileUpdate
	if vals, ok := r.PostForm["user_name"]; ok && len(vals) > 0 {
		name := vals[0]
		upd.UserName = &name
	}
	avatar, closeFile, err := form.file("avatar")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer closeFile()
	upd.Avatar = avatar

	p, err := h.users.UpdateProfile(r.Context(), userID(r), upd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Message: "profile updated", User: toProfile(p)})
}
