package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"auracall/internal/models"
	"auracall/internal/storage"
)

// Tracked number handlers

// GetNumbers returns all tracked numbers.
func (h *Handlers) GetNumbers(w http.ResponseWriter, r *http.Request) {
	numbers, err := h.storage.ListNumbers()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list numbers: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, numbers)
}

// SearchNumbers generates purchasable number candidates for an area code.
// Twice the requested quantity is returned so the caller has a list to pick
// from; nothing is persisted until PurchaseNumbers.
func (h *Handlers) SearchNumbers(w http.ResponseWriter, r *http.Request) {
	areaCode := r.URL.Query().Get("area_code")
	if areaCode == "" {
		areaCode = "800"
	}

	quantity := 5
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			http.Error(w, "quantity must be between 1 and 50", http.StatusBadRequest)
			return
		}
		quantity = n
	}

	writeJSON(w, http.StatusOK, generateAvailableNumbers(areaCode, quantity))
}

// PurchaseNumbers persists a batch of selected candidate numbers.
func (h *Handlers) PurchaseNumbers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Numbers []*models.TrackedNumber `json:"numbers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Numbers) == 0 {
		http.Error(w, "At least one number is required", http.StatusBadRequest)
		return
	}

	for _, n := range req.Numbers {
		if n.PhoneNumber == "" {
			http.Error(w, "Every number needs a phone_number", http.StatusBadRequest)
			return
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		n.CampaignID = ""
		n.Status = models.NumberAvailable
	}

	if err := h.storage.CreateNumbers(req.Numbers); err != nil {
		http.Error(w, fmt.Sprintf("Failed to purchase numbers: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, req.Numbers)
}

// AssignNumber assigns a tracked number to a campaign, or releases it when
// campaign_id is empty.
func (h *Handlers) AssignNumber(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		CampaignID string `json:"campaign_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	if req.CampaignID != "" {
		if _, err := h.storage.GetCampaign(req.CampaignID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Campaign not found", http.StatusNotFound)
				return
			}
			http.Error(w, fmt.Sprintf("Failed to look up campaign: %v", err), http.StatusInternalServerError)
			return
		}
	}

	if err := h.storage.AssignNumber(vars["id"], req.CampaignID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Number not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to assign number: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// generateAvailableNumbers fabricates candidate numbers in the given area
// code. Real provisioning would query a carrier inventory.
func generateAvailableNumbers(areaCode string, quantity int) []*models.TrackedNumber {
	numbers := make([]*models.TrackedNumber, 0, quantity*2)
	for i := 0; i < quantity*2; i++ {
		digits := 1000000 + rand.Intn(9000000)
		numbers = append(numbers, &models.TrackedNumber{
			ID:          fmt.Sprintf("new-%s-%d", areaCode, i),
			PhoneNumber: fmt.Sprintf("(%s) %03d-%04d", areaCode, digits/10000, digits%10000),
			Status:      models.NumberAvailable,
		})
	}
	return numbers
}
