package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auracall/internal/config"
	"auracall/internal/models"
	"auracall/internal/routing"
	"auracall/internal/storage"
	"auracall/internal/summary"
)

// stubStorage is an in-memory storage.Storage for handler tests.
type stubStorage struct {
	targets   []routing.Target
	campaigns []*models.Campaign
	numbers   []*models.TrackedNumber
	calls     []*models.Call

	failWith error // when set, every method returns this error
}

func newStubStorage() *stubStorage {
	return &stubStorage{
		targets: []routing.Target{
			{ID: "t1", Name: "Main Sales Line", Buyer: "AuraCall Inc.", Destination: "(555) 123-4567", Status: routing.TargetActive},
			{ID: "t2", Name: "Support Queue", Buyer: "AuraCall Inc.", Destination: "(555) 987-6543", Status: routing.TargetActive},
		},
		campaigns: []*models.Campaign{
			{ID: "c1", Name: "National TV Campaign Q4", Status: models.CampaignActive, TargetIDs: []string{"t1"}},
			{ID: "c2", Name: "Google Ads - West Coast", Status: models.CampaignActive, TargetIDs: []string{"t2"}},
		},
		numbers: []*models.TrackedNumber{
			{ID: "n1", PhoneNumber: "(800) 555-0101", CampaignID: "c2", Status: models.NumberAssigned},
			{ID: "n2", PhoneNumber: "(800) 555-0102", Status: models.NumberAvailable},
		},
		calls: []*models.Call{
			{ID: "call1", CallerID: "(555) 123-4567", CampaignID: "c1", TargetID: "t1", Duration: 320, Status: models.CallAnswered, Revenue: 50.00, Timestamp: time.Now()},
			{ID: "call2", CallerID: "(555) 987-6543", CampaignID: "c2", TargetID: "t2", Duration: 15, Status: models.CallMissed, Timestamp: time.Now()},
		},
	}
}

func (s *stubStorage) Close() error  { return s.failWith }
func (s *stubStorage) Health() error { return s.failWith }

func (s *stubStorage) ListTargets() ([]routing.Target, error) {
	return s.targets, s.failWith
}

func (s *stubStorage) GetTarget(id string) (*routing.Target, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for i := range s.targets {
		if s.targets[i].ID == id {
			return &s.targets[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *stubStorage) ListCampaigns() ([]*models.Campaign, error) {
	return s.campaigns, s.failWith
}

func (s *stubStorage) GetCampaign(id string) (*models.Campaign, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, c := range s.campaigns {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *stubStorage) CreateCampaign(campaign *models.Campaign) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.campaigns = append(s.campaigns, campaign)
	return nil
}

func (s *stubStorage) UpdateCampaign(campaign *models.Campaign) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, c := range s.campaigns {
		if c.ID == campaign.ID {
			s.campaigns[i] = campaign
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *stubStorage) DeleteCampaign(id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, n := range s.numbers {
		if n.CampaignID == id {
			return storage.ErrCampaignReferenced
		}
	}
	for i, c := range s.campaigns {
		if c.ID == id {
			s.campaigns = append(s.campaigns[:i], s.campaigns[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *stubStorage) ListNumbers() ([]*models.TrackedNumber, error) {
	return s.numbers, s.failWith
}

func (s *stubStorage) CreateNumbers(numbers []*models.TrackedNumber) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.numbers = append(s.numbers, numbers...)
	return nil
}

func (s *stubStorage) AssignNumber(id, campaignID string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, n := range s.numbers {
		if n.ID == id {
			n.CampaignID = campaignID
			if campaignID == "" {
				n.Status = models.NumberAvailable
			} else {
				n.Status = models.NumberAssigned
			}
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *stubStorage) ListCalls(filter storage.CallFilter) ([]*models.Call, int, error) {
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	var out []*models.Call
	for _, c := range s.calls {
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (s *stubStorage) CreateCall(call *models.Call) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.calls = append(s.calls, call)
	return nil
}

func (s *stubStorage) GetStats() (*models.Stats, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &models.Stats{TotalCalls: len(s.calls), AnsweredCalls: 1, MissedCalls: 1, TotalRevenue: 50.00, AnswerRate: 0.5}, nil
}

func (s *stubStorage) GetCallVolume(days int) ([]models.CallVolumePoint, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return []models.CallVolumePoint{{Date: time.Now().Format("2006-01-02"), Calls: len(s.calls)}}, nil
}

func (s *stubStorage) GetCallsByCampaign() ([]models.CampaignCallCount, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return []models.CampaignCallCount{{Campaign: "National TV Campaign Q4", Calls: 1}}, nil
}

func (s *stubStorage) GetStatusBreakdown() ([]models.StatusCount, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return []models.StatusCount{{Status: models.CallAnswered, Count: 1}, {Status: models.CallMissed, Count: 1}}, nil
}

// newTestHandlers wires a Handlers instance over the stub storage and a
// repository seeded with the default rules and groups.
func newTestHandlers(t *testing.T, store *stubStorage) (*Handlers, *routing.Repository) {
	t.Helper()

	repo := routing.NewRepository()
	repo.Load(routing.DefaultRules(), routing.DefaultGroups())

	sim := routing.NewSimulator(routing.NewBasicRuleEngine(), routing.NewWeightedSelector(nil))
	summarizer := summary.NewClient("", "http://localhost", "gemini-2.5-flash", nil)

	return New(store, repo, sim, summarizer, &config.Config{Port: "8080"}), repo
}

// newTestRouter registers the routes the tests exercise.
func newTestRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/routing/rules", h.GetRoutingRules).Methods("GET")
	api.HandleFunc("/routing/rules", h.SaveRoutingRule).Methods("POST")
	api.HandleFunc("/routing/rules/reorder", h.ReorderRoutingRules).Methods("POST")
	api.HandleFunc("/routing/rules/{id}", h.UpdateRoutingRule).Methods("PUT")
	api.HandleFunc("/routing/rules/{id}", h.DeleteRoutingRule).Methods("DELETE")
	api.HandleFunc("/routing/groups", h.GetTargetGroups).Methods("GET")
	api.HandleFunc("/routing/groups", h.SaveTargetGroup).Methods("POST")
	api.HandleFunc("/routing/groups/{id}", h.UpdateTargetGroup).Methods("PUT")
	api.HandleFunc("/routing/groups/{id}", h.DeleteTargetGroup).Methods("DELETE")
	api.HandleFunc("/routing/simulate", h.SimulateCall).Methods("POST")

	api.HandleFunc("/targets", h.GetTargets).Methods("GET")
	api.HandleFunc("/targets/{id}", h.GetTarget).Methods("GET")

	api.HandleFunc("/campaigns", h.GetCampaigns).Methods("GET")
	api.HandleFunc("/campaigns", h.CreateCampaign).Methods("POST")
	api.HandleFunc("/campaigns/{id}", h.GetCampaign).Methods("GET")
	api.HandleFunc("/campaigns/{id}", h.UpdateCampaign).Methods("PUT")
	api.HandleFunc("/campaigns/{id}", h.DeleteCampaign).Methods("DELETE")

	api.HandleFunc("/numbers", h.GetNumbers).Methods("GET")
	api.HandleFunc("/numbers/search", h.SearchNumbers).Methods("GET")
	api.HandleFunc("/numbers/purchase", h.PurchaseNumbers).Methods("POST")
	api.HandleFunc("/numbers/{id}/assign", h.AssignNumber).Methods("POST")

	api.HandleFunc("/calls", h.GetCalls).Methods("GET")
	api.HandleFunc("/calls/export", h.ExportCalls).Methods("GET")

	api.HandleFunc("/stats", h.GetStats).Methods("GET")
	api.HandleFunc("/stats/volume", h.GetCallVolume).Methods("GET")
	api.HandleFunc("/stats/campaigns", h.GetCallsByCampaign).Methods("GET")
	api.HandleFunc("/stats/status", h.GetStatusBreakdown).Methods("GET")

	api.HandleFunc("/reports/summary", h.GenerateReportSummary).Methods("POST")

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetRoutingRules(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/routing/rules", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rules []*routing.RoutingRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	require.Len(t, rules, 3)
	for i, rule := range rules {
		assert.Equal(t, i+1, rule.Priority)
	}
}

func TestSaveRoutingRule(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/routing/rules", &routing.RoutingRule{
		Priority: 1,
		Action:   routing.ActionBlock,
		Criteria: []routing.Criterion{{Type: routing.CriterionCallerID, Pattern: "(900)"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var rules []*routing.RoutingRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	require.Len(t, rules, 4)
	assert.Equal(t, routing.ActionBlock, rules[0].Action)
	assert.NotEmpty(t, rules[0].ID)
}

func TestSaveRoutingRule_InvalidRule(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	// RouteTo with no group id
	rec := doJSON(t, router, "POST", "/api/routing/rules", &routing.RoutingRule{
		Priority: 1,
		Action:   routing.ActionRouteTo,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRoutingRule(t *testing.T) {
	h, repo := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	victim := repo.Rules()[0]
	rec := doJSON(t, router, "PUT", "/api/routing/rules/"+victim.ID, &routing.RoutingRule{
		Priority: victim.Priority,
		Action:   routing.ActionBlock,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var rules []*routing.RoutingRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	require.Len(t, rules, 3)
	assert.Equal(t, routing.ActionBlock, rules[0].Action)
	assert.Equal(t, victim.ID, rules[0].ID)
}

func TestUpdateRoutingRule_NotFound(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "PUT", "/api/routing/rules/ghost", &routing.RoutingRule{Action: routing.ActionBlock})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTargetGroup(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "PUT", "/api/routing/groups/tg1", &routing.TargetGroup{
		Name: "Weekday Sales (rebalanced)",
		Targets: []routing.WeightedTarget{
			{TargetID: "t1", Weight: 50},
			{TargetID: "t2", Weight: 50},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []*routing.TargetGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	for _, g := range groups {
		if g.ID == "tg1" {
			assert.Equal(t, "Weekday Sales (rebalanced)", g.Name)
		}
	}
}

func TestDeleteRoutingRule(t *testing.T) {
	h, repo := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	victim := repo.Rules()[0]
	rec := doJSON(t, router, "DELETE", "/api/routing/rules/"+victim.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rules []*routing.RoutingRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	require.Len(t, rules, 2)
	assert.Equal(t, 1, rules[0].Priority)
}

func TestReorderRoutingRules(t *testing.T) {
	h, repo := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	before := repo.Rules()
	rec := doJSON(t, router, "POST", "/api/routing/rules/reorder", map[string]string{
		"dragged_id": before[2].ID,
		"drop_id":    before[0].ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var rules []*routing.RoutingRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rules))
	require.Len(t, rules, 3)
	assert.Equal(t, before[2].ID, rules[0].ID)
	assert.Equal(t, 1, rules[0].Priority)
}

func TestReorderRoutingRules_MissingIDs(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/routing/rules/reorder", map[string]string{"dragged_id": "r1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveTargetGroup_WeightValidation(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/routing/groups", &routing.TargetGroup{
		Name: "Lopsided",
		Targets: []routing.WeightedTarget{
			{TargetID: "t1", Weight: 70},
			{TargetID: "t2", Weight: 20},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "weights")
}

func TestDeleteTargetGroup_Referenced(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	// tg1 is routed to by the default weekday rule.
	rec := doJSON(t, router, "DELETE", "/api/routing/groups/tg1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSimulateCall_Blocked(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	// 20:00 is outside the weekday rule's window, so the block rule fires.
	rec := doJSON(t, router, "POST", "/api/routing/simulate", &routing.CallContext{
		TimeOfDay: "20:00",
		DayOfWeek: "Tuesday",
		CallerID:  "(555) 867-5309",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result routing.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.MatchedRule)
	assert.Equal(t, routing.ActionBlock, result.MatchedRule.Action)
	assert.Nil(t, result.RoutedTarget)
	assert.Contains(t, result.Message, "blocked")
}

func TestSimulateCall_Routed(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/routing/simulate", &routing.CallContext{
		TimeOfDay: "10:00",
		DayOfWeek: "Tuesday",
		CallerID:  "(212) 555-0100",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result routing.SimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.MatchedRule)
	assert.Equal(t, routing.ActionRouteTo, result.MatchedRule.Action)
	require.NotNil(t, result.RoutedGroup)
	assert.Equal(t, "tg1", result.RoutedGroup.ID)
}

func TestGetTargets(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/targets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var targets []routing.Target
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &targets))
	assert.Len(t, targets, 2)
}

func TestGetTarget_NotFound(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/targets/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCampaignLifecycle(t *testing.T) {
	store := newStubStorage()
	h, _ := newTestHandlers(t, store)
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/campaigns", &models.Campaign{Name: "Radio Spots"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Campaign
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.CampaignActive, created.Status)

	rec = doJSON(t, router, "PUT", "/api/campaigns/"+created.ID, &models.Campaign{Name: "Radio Spots", Status: models.CampaignPaused})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, "GET", "/api/campaigns/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Campaign
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.CampaignPaused, got.Status)

	rec = doJSON(t, router, "DELETE", "/api/campaigns/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateCampaign_RequiresName(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/campaigns", &models.Campaign{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCampaign_WithAssignedNumbers(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	// c2 has n1 assigned in the stub.
	rec := doJSON(t, router, "DELETE", "/api/campaigns/c2", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSearchNumbers(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/numbers/search?area_code=415&quantity=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var numbers []*models.TrackedNumber
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &numbers))
	require.Len(t, numbers, 6) // twice the requested quantity
	for _, n := range numbers {
		assert.True(t, strings.HasPrefix(n.PhoneNumber, "(415) "), "got %s", n.PhoneNumber)
		assert.Equal(t, models.NumberAvailable, n.Status)
	}
}

func TestSearchNumbers_InvalidQuantity(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/numbers/search?quantity=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPurchaseNumbers(t *testing.T) {
	store := newStubStorage()
	h, _ := newTestHandlers(t, store)
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/numbers/purchase", map[string]interface{}{
		"numbers": []*models.TrackedNumber{
			{PhoneNumber: "(415) 555-0001"},
			{PhoneNumber: "(415) 555-0002"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var purchased []*models.TrackedNumber
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &purchased))
	require.Len(t, purchased, 2)
	for _, n := range purchased {
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, models.NumberAvailable, n.Status)
	}
	assert.Len(t, store.numbers, 4)
}

func TestPurchaseNumbers_EmptyBatch(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/numbers/purchase", map[string]interface{}{"numbers": []string{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignNumber(t *testing.T) {
	store := newStubStorage()
	h, _ := newTestHandlers(t, store)
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/numbers/n2/assign", map[string]string{"campaign_id": "c1"})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "c1", store.numbers[1].CampaignID)
	assert.Equal(t, models.NumberAssigned, store.numbers[1].Status)
}

func TestAssignNumber_UnknownCampaign(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/numbers/n2/assign", map[string]string{"campaign_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCalls(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/calls?status=Answered", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Calls []*models.Call `json:"calls"`
		Total int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Calls, 1)
	assert.Equal(t, models.CallAnswered, resp.Calls[0].Status)
}

func TestGetCalls_InvalidLimit(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/calls?limit=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCalls(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/calls/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3) // header + two calls
	assert.True(t, strings.HasPrefix(lines[0], "id,caller_id,campaign_id"))
	assert.Contains(t, lines[1], "call1")
}

func TestGetStats(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalCalls)
}

func TestGetCallVolume_InvalidDays(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/api/stats/volume?days=9000", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	store := newStubStorage()
	store.failWith = fmt.Errorf("database is gone")
	h, _ := newTestHandlers(t, store)
	router := newTestRouter(h)

	rec := doJSON(t, router, "GET", "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGenerateReportSummary_Unconfigured(t *testing.T) {
	h, _ := newTestHandlers(t, newStubStorage())
	router := newTestRouter(h)

	// newTestHandlers builds the summarizer with an empty API key.
	rec := doJSON(t, router, "POST", "/api/reports/summary", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "GEMINI_API_KEY")
}

func TestGenerateReportSummary(t *testing.T) {
	model := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"### AI-Powered Performance Summary"}]}}]}`))
	}))
	defer model.Close()

	store := newStubStorage()
	repo := routing.NewRepository()
	repo.Load(routing.DefaultRules(), routing.DefaultGroups())
	sim := routing.NewSimulator(routing.NewBasicRuleEngine(), routing.NewWeightedSelector(nil))
	summarizer := summary.NewClient("test-key", model.URL, "gemini-2.5-flash", model.Client())
	h := New(store, repo, sim, summarizer, &config.Config{Port: "8080"})
	router := newTestRouter(h)

	rec := doJSON(t, router, "POST", "/api/reports/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["summary"], "Performance Summary")
}
