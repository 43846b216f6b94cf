package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"auracall/internal/routing"
)

// Routing rule and target group management handlers

// GetRoutingRules returns all routing rules in priority order.
func (h *Handlers) GetRoutingRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.Rules())
}

// SaveRoutingRule creates or updates a routing rule. The repository assigns
// an ID for new rules and renumbers priorities densely; the full rule list is
// returned so clients can refresh in one round trip.
func (h *Handlers) SaveRoutingRule(w http.ResponseWriter, r *http.Request) {
	var rule routing.RoutingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	rules, err := h.repo.SaveRule(&rule)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to save rule: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, rules)
}

// UpdateRoutingRule updates a rule in place; the path ID wins over any ID in
// the body.
func (h *Handlers) UpdateRoutingRule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var rule routing.RoutingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	rule.ID = vars["id"]

	if _, err := h.repo.GetRule(rule.ID); err != nil {
		http.Error(w, "Rule not found", http.StatusNotFound)
		return
	}

	rules, err := h.repo.SaveRule(&rule)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to update rule: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, rules)
}

// DeleteRoutingRule removes a routing rule and returns the renumbered list.
func (h *Handlers) DeleteRoutingRule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rules := h.repo.DeleteRule(vars["id"])
	writeJSON(w, http.StatusOK, rules)
}

// ReorderRoutingRules moves a dragged rule to another rule's position.
func (h *Handlers) ReorderRoutingRules(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DraggedID string `json:"dragged_id"`
		DropID    string `json:"drop_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	if req.DraggedID == "" || req.DropID == "" {
		http.Error(w, "dragged_id and drop_id are required", http.StatusBadRequest)
		return
	}

	rules := h.repo.ReorderRule(req.DraggedID, req.DropID)
	writeJSON(w, http.StatusOK, rules)
}

// GetTargetGroups returns all target groups.
func (h *Handlers) GetTargetGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.Groups())
}

// SaveTargetGroup creates or updates a target group. Member weights must sum
// to exactly 100.
func (h *Handlers) SaveTargetGroup(w http.ResponseWriter, r *http.Request) {
	var group routing.TargetGroup
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	groups, err := h.repo.SaveGroup(&group)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to save group: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, groups)
}

// UpdateTargetGroup updates a group in place; the path ID wins over any ID in
// the body.
func (h *Handlers) UpdateTargetGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var group routing.TargetGroup
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}
	group.ID = vars["id"]

	if _, err := h.repo.GetGroup(group.ID); err != nil {
		http.Error(w, "Group not found", http.StatusNotFound)
		return
	}

	groups, err := h.repo.SaveGroup(&group)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to update group: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, groups)
}

// DeleteTargetGroup removes a target group unless a rule still routes to it.
func (h *Handlers) DeleteTargetGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	groups, err := h.repo.DeleteGroup(vars["id"])
	if err != nil {
		if errors.Is(err, routing.ErrGroupReferenced) {
			http.Error(w, fmt.Sprintf("Failed to delete group: %v", err), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to delete group: %v", err), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, groups)
}

// SimulateCall runs a hypothetical call through the current rule set and
// reports which rule matched and where the call would land.
func (h *Handlers) SimulateCall(w http.ResponseWriter, r *http.Request) {
	var callCtx routing.CallContext
	if err := json.NewDecoder(r.Body).Decode(&callCtx); err != nil {
		http.Error(w, fmt.Sprintf("Invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	targets, err := h.storage.ListTargets()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to load targets: %v", err), http.StatusInternalServerError)
		return
	}

	result := h.simulator.Simulate(&callCtx, h.repo.Rules(), h.repo.Groups(), targets)
	writeJSON(w, http.StatusOK, result)
}
