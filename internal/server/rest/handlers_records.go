package rest

import (
	"net/http"

	"github.com/dmitrijs2005/lifelog/internal/server/services"
	"github.com/gorilla/mux"
)

// readRecordInput decodes a JSON body or a multipart/urlencoded form with
// an optional "image" part. The returned func releases the form.
func readRecordInput(r *http.Request) (services.RecordInput, func(), error) {
	if isJSON(r) {
		var req recordRequest
		if err := decodeJSON(r, &req); err != nil {
			return services.RecordInput{}, func() {}, err
		}
		return recordInputFields(req), func() {}, nil
	}

	form, err := parseForm(r)
	if err != nil {
		return services.RecordInput{}, func() {}, err
	}
	in := services.RecordInput{
		Title:       form.value("title"),
		Description: form.value("description"),
		DateLogged:  form.value("date_logged"),
		CategoryID:  form.value("category_id"),
	}
	img, closeFile, err := form.file("image")
	if err != nil {
		form.cleanup()
		return services.RecordInput{}, func() {}, err
	}
	in.Image = img
	return in, func() { closeFile(); form.cleanup() }, nil
}

func recordInputFields(req recordRequest) services.RecordInput {
	return services.RecordInput{
		Title:       req.Title,
		Description: req.Description,
		DateLogged:  req.DateLogged,
		CategoryID:  req.CategoryID,
	}
}

func (h *handlers) listRecords(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.List(r.Context(), userID(r), r.URL.Query().Get("category_id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]recordJSON, 0, len(list))
	for _, rec := range list {
		out = append(out, toRecord(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) getRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.Get(r.Context(), userID(r), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{Record: toRecord(rec)})
}

func (h *handlers) createRecord(w http.ResponseWriter, r *http.Request) {
	in, release, err := readRecordInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer release()

	rec, err := h.records.Create(r.Context(), userID(r), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordCreatedResponse{
		Message:  "record created",
		RecordID: rec.ID,
		ImageURL: rec.ImageURL,
	})
}

func (h *handlers) updateRecord(w http.ResponseWriter, r *http.Request) {
	in, release, err := readRecordInput(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer release()

	rec, err := h.records.Update(r.Context(), userID(r), mux.Vars(r)["id"], in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{Message: "record updated", Record: toRecord(rec)})
}

func (h *handlers) deleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.records.Delete(r.Context(), userID(r), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "record deleted")
}

func (h *handlers) recordStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.stats.Summary(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsJSON{
		Total:         s.Total,
		ThisMonth:     s.ThisMonth,
		LastSevenDays: s.LastSevenDays,
		Categories:    s.Categories,
	})
}
