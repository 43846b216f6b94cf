package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"auracall/internal/models"
	"auracall/internal/storage"
)

// Campaign management handlers

// GetCampaigns returns all campaigns.
func (h *Handlers) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.storage.ListCampaigns()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list campaigns: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// GetCampaign returns a single campaign by ID.
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	campaign, err := h.storage.GetCampaign(vars["id"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to get campaign: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// CreateCampaign creates a new campaign. New campaigns start Active unless a
// status is given.
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var campaign models.Campaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if campaign.Name == "" {
		http.Error(w, "Campaign name is required", http.StatusBadRequest)
		return
	}

	if campaign.ID == "" {
		campaign.ID = uuid.NewString()
	}
	if campaign.Status == "" {
		campaign.Status = models.CampaignActive
	}

	if err := h.storage.CreateCampaign(&campaign); err != nil {
		http.Error(w, fmt.Sprintf("Failed to create campaign: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, &campaign)
}

// UpdateCampaign updates an existing campaign.
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var campaign models.Campaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	campaign.ID = vars["id"]

	if err := h.storage.UpdateCampaign(&campaign); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to update campaign: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, &campaign)
}

// DeleteCampaign removes a campaign unless tracked numbers are still assigned
// to it.
func (h *Handlers) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.storage.DeleteCampaign(vars["id"]); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Campaign not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrCampaignReferenced):
			http.Error(w, fmt.Sprintf("Failed to delete campaign: %v", err), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to delete campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
