package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"auracall/internal/storage"
)

// Call log handlers

// GetCalls returns call logs, newest first. Supports status, limit and offset
// query parameters.
func (h *Handlers) GetCalls(w http.ResponseWriter, r *http.Request) {
	filter := storage.CallFilter{
		Status: r.URL.Query().Get("status"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		filter.Limit = n
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "offset must be a non-negative integer", http.StatusBadRequest)
			return
		}
		filter.Offset = n
	}

	calls, total, err := h.storage.ListCalls(filter)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list calls: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"calls": calls,
		"total": total,
	})
}

// ExportCalls streams the filtered call log as a CSV download.
func (h *Handlers) ExportCalls(w http.ResponseWriter, r *http.Request) {
	filter := storage.CallFilter{
		Status: r.URL.Query().Get("status"),
	}

	calls, _, err := h.storage.ListCalls(filter)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list calls: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=calls-%s.csv", time.Now().Format("2006-01-02")))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "caller_id", "campaign_id", "target_id", "duration_seconds", "status", "cost", "revenue", "timestamp", "notes"})
	for _, call := range calls {
		_ = cw.Write([]string{
			call.ID,
			call.CallerID,
			call.CampaignID,
			call.TargetID,
			strconv.Itoa(call.Duration),
			string(call.Status),
			strconv.FormatFloat(call.Cost, 'f', 2, 64),
			strconv.FormatFloat(call.Revenue, 'f', 2, 64),
			call.Timestamp.Format(time.RFC3339),
			call.Notes,
		})
	}
	cw.Flush()
}
