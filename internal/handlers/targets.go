package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"auracall/internal/storage"
)

// Target reference data handlers

// GetTargets returns all routing targets.
func (h *Handlers) GetTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.storage.ListTargets()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list targets: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, targets)
}

// GetTarget returns a single target by ID.
func (h *Handlers) GetTarget(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	target, err := h.storage.GetTarget(vars["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Target not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get target: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, target)
}
