package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"auracall/internal/storage"
	"auracall/internal/summary"
)

// GenerateReportSummary asks the configured AI model for a markdown
// performance report over the current call log.
func (h *Handlers) GenerateReportSummary(w http.ResponseWriter, r *http.Request) {
	calls, _, err := h.storage.ListCalls(storage.CallFilter{})
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list calls: %v", err), http.StatusInternalServerError)
		return
	}

	campaigns, err := h.storage.ListCampaigns()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list campaigns: %v", err), http.StatusInternalServerError)
		return
	}
	names := make(map[string]string, len(campaigns))
	for _, c := range campaigns {
		names[c.ID] = c.Name
	}

	text, err := h.summarizer.GenerateReportSummary(r.Context(), calls, names)
	if err != nil {
		if errors.Is(err, summary.ErrMissingAPIKey) {
			http.Error(w, "AI summary is not configured: set GEMINI_API_KEY", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to generate summary: %v", err), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}
