// Package models defines the domain and API types shared by the storage
// layer and the REST handlers.
package models

import "time"

// CallStatus is the terminal disposition of a tracked call.
type CallStatus string

const (
	CallAnswered  CallStatus = "Answered"
	CallMissed    CallStatus = "Missed"
	CallVoicemail CallStatus = "Voicemail"
	CallFailed    CallStatus = "Failed"
)

// CampaignStatus is the lifecycle state of a marketing campaign.
type CampaignStatus string

const (
	CampaignActive CampaignStatus = "Active"
	CampaignPaused CampaignStatus = "Paused"
	CampaignEnded  CampaignStatus = "Ended"
)

// NumberStatus marks whether a tracked number is assigned to a campaign.
type NumberStatus string

const (
	NumberAssigned  NumberStatus = "Assigned"
	NumberAvailable NumberStatus = "Available"
)

// Campaign is a marketing campaign that tracked numbers and calls attribute to.
type Campaign struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Status    CampaignStatus `json:"status"`
	TargetIDs []string       `json:"target_ids"`
}

// TrackedNumber is a provisioned phone number, optionally assigned to a campaign.
type TrackedNumber struct {
	ID          string       `json:"id"`
	PhoneNumber string       `json:"phone_number"`
	CampaignID  string       `json:"campaign_id,omitempty"` // empty while unassigned
	Status      NumberStatus `json:"status"`
}

// Call is one logged inbound call with its tracking metadata.
type Call struct {
	ID           string     `json:"id"`
	CallerID     string     `json:"caller_id"`
	CampaignID   string     `json:"campaign_id"`
	TargetID     string     `json:"target_id"`
	Duration     int        `json:"duration"` // seconds
	Status       CallStatus `json:"status"`
	Cost         float64    `json:"cost"`
	Revenue      float64    `json:"revenue"`
	Timestamp    time.Time  `json:"timestamp"`
	RecordingURL string     `json:"recording_url,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// Stats is the dashboard headline summary.
type Stats struct {
	TotalCalls    int     `json:"total_calls"`
	AnsweredCalls int     `json:"answered_calls"`
	MissedCalls   int     `json:"missed_calls"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalCost     float64 `json:"total_cost"`
	AnswerRate    float64 `json:"answer_rate"` // answered / total, 0 when no calls
}

// CallVolumePoint is one day of the call-volume chart.
type CallVolumePoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Calls int    `json:"calls"`
}

// CampaignCallCount is one bar of the calls-by-campaign chart.
type CampaignCallCount struct {
	Campaign string `json:"campaign"`
	Calls    int    `json:"calls"`
}

// StatusCount is one slice of the call-status distribution chart.
type StatusCount struct {
	Status CallStatus `json:"status"`
	Count  int        `json:"count"`
}
