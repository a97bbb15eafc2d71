package rest

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/record"
)

// Validator is implemented by records that can reject their own content before they are stored.
type Validator interface {
	Validate() error
}

// RecordHandler serves the CRUD endpoints of one record collection.
// Routes are expected to carry the record id in the "id" path variable.
type RecordHandler[T any] struct {
	repo   record.Repository[T]
	name   string
	idOf   func(T) string
	withId func(T, string) T
}

// NewRecordHandler needs withId to assign a generated id to records created without one.
func NewRecordHandler[T any](repo record.Repository[T], name string, idOf func(T) string, withId func(T, string) T) *RecordHandler[T] {
	return &RecordHandler[T]{repo: repo, name: name, idOf: idOf, withId: withId}
}

func (h *RecordHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	log.Debugf("Listing %s records", h.name)
	items, err := h.repo.GetAll(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to list "+h.name, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (h *RecordHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	item, found, err := h.repo.GetById(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to read "+h.name, err.Error())
		return
	}
	if !found {
		WriteError(w, http.StatusNotFound, h.name+" not found", id)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (h *RecordHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid "+h.name, err.Error())
		return
	}
	if h.idOf(item) == "" {
		item = h.withId(item, uuid.NewString())
	}
	if !h.valid(w, item) {
		return
	}
	log.Debugf("Creating %s %s", h.name, h.idOf(item))
	ok, err := h.repo.Add(r.Context(), item)
	if !record.Succeeded(ok, err) {
		h.writeFailure(w, ok, err, h.idOf(item))
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

// Update replaces the record named in the path. A body without id takes the path id.
func (h *RecordHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item T
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid "+h.name, err.Error())
		return
	}
	switch h.idOf(item) {
	case "":
		item = h.withId(item, id)
	case id:
	default:
		WriteError(w, http.StatusBadRequest, "id mismatch", "body id must match the path id")
		return
	}
	if !h.valid(w, item) {
		return
	}
	ok, err := h.repo.Update(r.Context(), item)
	if !record.Succeeded(ok, err) {
		h.writeFailure(w, ok, err, id)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (h *RecordHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ok, err := h.repo.Delete(r.Context(), id)
	if !record.Succeeded(ok, err) {
		h.writeFailure(w, ok, err, id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecordHandler[T]) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ok, err := h.repo.DeleteAll(r.Context())
	if !record.Succeeded(ok, err) {
		h.writeFailure(w, ok, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// valid writes a 400 response when item implements Validator and rejects itself.
func (h *RecordHandler[T]) valid(w http.ResponseWriter, item T) bool {
	v, ok := any(item).(Validator)
	if !ok {
		return true
	}
	if err := v.Validate(); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid "+h.name, err.Error())
		return false
	}
	return true
}

func (h *RecordHandler[T]) writeFailure(w http.ResponseWriter, ok bool, err error, id string) {
	switch record.Classify(ok, err) {
	case record.OutcomeNotFound:
		WriteError(w, http.StatusNotFound, h.name+" not found", id)
	case record.OutcomeCodecFailure:
		WriteError(w, http.StatusInternalServerError, "cannot encode "+h.name, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "failed to store "+h.name, err.Error())
	}
}
