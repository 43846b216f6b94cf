package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// Dashboard statistics handlers

// GetStats returns the headline dashboard numbers.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.storage.GetStats()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get stats: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetCallVolume returns the per-day call counts for the volume chart. The
// window defaults to 30 days and is capped at 365.
func (h *Handlers) GetCallVolume(w http.ResponseWriter, r *http.Request) {
	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			http.Error(w, "days must be between 1 and 365", http.StatusBadRequest)
			return
		}
		days = n
	}

	points, err := h.storage.GetCallVolume(days)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get call volume: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// GetCallsByCampaign returns call counts per campaign, busiest first.
func (h *Handlers) GetCallsByCampaign(w http.ResponseWriter, r *http.Request) {
	counts, err := h.storage.GetCallsByCampaign()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get campaign counts: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// GetStatusBreakdown returns the call status distribution.
func (h *Handlers) GetStatusBreakdown(w http.ResponseWriter, r *http.Request) {
	counts, err := h.storage.GetStatusBreakdown()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get status breakdown: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// HealthCheck reports service and database health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Health(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
