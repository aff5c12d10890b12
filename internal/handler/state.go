package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kdduha/chiliguard/internal/models"
)

type stateStore interface {
	Snapshot() models.StateSnapshot
	History() []models.HistoryEntry
	RemoveHistory(id string)
	ClearHistory()
	Reset()
}

type StateHandler struct {
	store stateStore
}

func NewStateHandler(store stateStore) *StateHandler {
	return &StateHandler{store: store}
}

// Snapshot godoc
// @Summary Current state
// @Tags state
// @Produce json
// @Success 200 {object} models.StateSnapshot
// @Router /state [get]
func (h *StateHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// Reset godoc
// @Summary Reset all state
// @Description Clears the capture, result, chat and history.
// @Tags state
// @Produce json
// @Success 200 {object} models.StateSnapshot
// @Router /state/reset [post]
func (h *StateHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// History godoc
// @Summary Diagnosis history
// @Description Newest first, at most 50 entries.
// @Tags history
// @Produce json
// @Success 200 {array} models.HistoryEntry
// @Router /history [get]
func (h *StateHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.History())
}

// ClearHistory godoc
// @Summary Clear history
// @Tags history
// @Success 204
// @Router /history [delete]
func (h *StateHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.store.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

// RemoveHistory godoc
// @Summary Remove one history entry
// @Description Unknown ids are ignored.
// @Tags history
// @Param id path string true "Entry id"
// @Success 204
// @Router /history/{id} [delete]
func (h *StateHandler) RemoveHistory(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveHistory(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
