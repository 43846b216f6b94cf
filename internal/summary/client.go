// Package summary generates AI performance reports from call data using a
// Gemini-style generateContent REST endpoint.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"auracall/internal/models"
)

var (
	// ErrMissingAPIKey is returned when no API key is configured
	ErrMissingAPIKey = errors.New("api key is not configured")

	// ErrEmptyResponse is returned when the model answers with no candidates
	ErrEmptyResponse = errors.New("model returned no candidates")
)

// Client talks to a generateContent endpoint. The zero value is not usable,
// construct it with NewClient.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewClient builds a summary client. httpClient may be nil, in which case a
// default client with a 30 second timeout is used.
func NewClient(apiKey, baseURL, model string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    httpClient,
	}
}

// request/response shapes for the generateContent wire format.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateReportSummary aggregates the given calls and asks the model for a
// short markdown performance report. campaignNames maps campaign IDs to
// display names; unknown IDs fall back to the raw ID.
func (c *Client) GenerateReportSummary(ctx context.Context, calls []*models.Call, campaignNames map[string]string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	prompt := buildPrompt(calls, campaignNames)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach model endpoint: %w", err)
	}
	defer resp.Body.Close()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if decoded.Error != nil && decoded.Error.Message != "" {
			return "", fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, decoded.Error.Message)
		}
		return "", fmt.Errorf("model endpoint returned %d", resp.StatusCode)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt reduces the calls to headline numbers and renders the analyst
// prompt sent to the model.
func buildPrompt(calls []*models.Call, campaignNames map[string]string) string {
	totalCalls := 0
	totalRevenue := 0.0
	byCampaign := map[string]int{}
	byStatus := map[string]int{}

	for _, call := range calls {
		totalCalls++
		totalRevenue += call.Revenue

		name := campaignNames[call.CampaignID]
		if name == "" {
			name = call.CampaignID
		}
		byCampaign[name]++
		byStatus[string(call.Status)]++
	}

	var b strings.Builder
	b.WriteString("You are a senior call tracking analyst providing a performance summary.\n")
	b.WriteString("Analyze the following call data and provide a concise, insightful report in markdown format.\n\n")
	b.WriteString("Data Summary:\n")
	fmt.Fprintf(&b, "- Total Calls: %d\n", totalCalls)
	fmt.Fprintf(&b, "- Total Revenue: $%.2f\n", totalRevenue)
	fmt.Fprintf(&b, "- Calls by Campaign: %s\n", formatCounts(byCampaign))
	fmt.Fprintf(&b, "- Calls by Status: %s\n\n", formatCounts(byStatus))
	b.WriteString("Your report should:\n")
	b.WriteString("1. Start with a title \"### AI-Powered Performance Summary\".\n")
	b.WriteString("2. Provide a brief overview of the key metrics (total calls and revenue).\n")
	b.WriteString("3. Identify the top-performing campaign.\n")
	b.WriteString("4. Comment on the call status distribution (e.g., answered vs. missed calls).\n")
	b.WriteString("5. Conclude with one key, actionable insight or recommendation for improvement.\n")
	return b.String()
}

// formatCounts renders a count map as stable JSON-ish text, keys sorted so the
// prompt is deterministic.
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", k, counts[k])
	}
	b.WriteString("}")
	return b.String()
}
