package sqlite

import (
	"fmt"
	"time"

	"auracall/internal/models"
)

// seed populates a fresh database with sample reference data so a new
// install has something to show on the dashboard. It is a no-op once any
// targets exist.
func (a *Adapter) seed() error {
	var count int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM targets`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	targets := [][]string{
		{"t1", "Main Sales Line", "AuraCall Inc.", "(555) 123-4567", "Active"},
		{"t2", "Support Queue", "AuraCall Inc.", "(555) 987-6543", "Active"},
		{"t3", "West Coast Sales", "AuraCall Inc.", "(555) 111-2222", "Inactive"},
	}
	for _, t := range targets {
		if _, err := tx.Exec(`INSERT INTO targets (id, name, buyer, destination, status) VALUES (?, ?, ?, ?, ?)`,
			t[0], t[1], t[2], t[3], t[4]); err != nil {
			return fmt.Errorf("failed to seed target %s: %w", t[0], err)
		}
	}

	campaigns := []struct {
		id, name  string
		status    models.CampaignStatus
		targetIDs string
	}{
		{"c1", "National TV Campaign Q4", models.CampaignActive, `["t1","t2"]`},
		{"c2", "Google Ads - West Coast", models.CampaignActive, `["t3"]`},
		{"c3", "Facebook Lead Gen - Fall Promo", models.CampaignPaused, `["t1"]`},
		{"c4", "Direct Mail - Seniors", models.CampaignEnded, `["t2"]`},
		{"c5", "Website Call Button", models.CampaignActive, `["t2"]`},
	}
	for _, c := range campaigns {
		if _, err := tx.Exec(`INSERT INTO campaigns (id, name, status, target_ids) VALUES (?, ?, ?, ?)`,
			c.id, c.name, c.status, c.targetIDs); err != nil {
			return fmt.Errorf("failed to seed campaign %s: %w", c.id, err)
		}
	}

	numbers := []struct {
		id, phone, campaignID string
		status                models.NumberStatus
	}{
		{"n1", "(800) 555-0101", "c2", models.NumberAssigned},
		{"n2", "(800) 555-0102", "c3", models.NumberAssigned},
		{"n3", "(800) 555-0103", "c5", models.NumberAssigned},
		{"n4", "(800) 555-0104", "", models.NumberAvailable},
		{"n5", "(800) 555-0105", "", models.NumberAvailable},
		{"n6", "(800) 555-0106", "c4", models.NumberAssigned},
	}
	for _, n := range numbers {
		campaignID := interface{}(n.campaignID)
		if n.campaignID == "" {
			campaignID = nil
		}
		if _, err := tx.Exec(`INSERT INTO numbers (id, phone_number, campaign_id, status) VALUES (?, ?, ?, ?)`,
			n.id, n.phone, campaignID, n.status); err != nil {
			return fmt.Errorf("failed to seed number %s: %w", n.id, err)
		}
	}

	now := time.Now()
	calls := []models.Call{
		{ID: "call1", CallerID: "(555) 123-4567", CampaignID: "c2", TargetID: "t3", Duration: 320, Status: models.CallAnswered, Cost: 2.50, Revenue: 50.00, Timestamp: now.Add(-45 * time.Minute), RecordingURL: "/rec/1.mp3", Notes: "Customer was interested in the new X-1 model. Follow up next week."},
		{ID: "call2", CallerID: "(555) 987-6543", CampaignID: "c3", TargetID: "t1", Duration: 15, Status: models.CallMissed, Cost: 1.20, Timestamp: now.Add(-40 * time.Minute)},
		{ID: "call3", CallerID: "(555) 555-1212", CampaignID: "c5", TargetID: "t2", Duration: 180, Status: models.CallAnswered, Revenue: 25.00, Timestamp: now.Add(-35 * time.Minute), RecordingURL: "/rec/3.mp3", Notes: "Inquired about pricing."},
		{ID: "call4", CallerID: "(555) 345-6789", CampaignID: "c2", TargetID: "t3", Duration: 600, Status: models.CallAnswered, Cost: 2.50, Revenue: 150.00, Timestamp: now.Add(-30 * time.Minute), RecordingURL: "/rec/4.mp3", Notes: "Converted to a sale. High value client."},
		{ID: "call5", CallerID: "(555) 234-5678", CampaignID: "c2", TargetID: "t3", Duration: 0, Status: models.CallFailed, Cost: 0.80, Timestamp: now.Add(-25 * time.Minute), Notes: "Call failed to connect."},
		{ID: "call6", CallerID: "(555) 876-5432", CampaignID: "c5", TargetID: "t2", Duration: 95, Status: models.CallVoicemail, Timestamp: now.Add(-20 * time.Minute), RecordingURL: "/rec/6.mp3"},
		{ID: "call7", CallerID: "(555) 111-2222", CampaignID: "c3", TargetID: "t1", Duration: 240, Status: models.CallAnswered, Cost: 1.20, Revenue: 40.00, Timestamp: now.AddDate(0, 0, -1), RecordingURL: "/rec/7.mp3", Notes: "Wants a demo scheduled for Friday."},
		{ID: "call8", CallerID: "(555) 444-3333", CampaignID: "c2", TargetID: "t3", Duration: 450, Status: models.CallAnswered, Cost: 2.50, Revenue: 80.00, Timestamp: now.AddDate(0, 0, -1), RecordingURL: "/rec/8.mp3"},
		{ID: "call9", CallerID: "(555) 999-8888", CampaignID: "c4", TargetID: "t2", Duration: 120, Status: models.CallAnswered, Cost: 0.50, Revenue: 20.00, Timestamp: now.AddDate(0, 0, -2), Notes: "Mentioned the postcard they received."},
		{ID: "call10", CallerID: "(555) 777-6666", CampaignID: "c2", TargetID: "t3", Duration: 25, Status: models.CallMissed, Cost: 0.80, Timestamp: now.AddDate(0, 0, -2)},
	}
	for _, c := range calls {
		if _, err := tx.Exec(`INSERT INTO calls
			(id, caller_id, campaign_id, target_id, duration, status, cost, revenue, timestamp, recording_url, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.CallerID, c.CampaignID, c.TargetID, c.Duration, c.Status, c.Cost, c.Revenue,
			c.Timestamp, c.RecordingURL, c.Notes); err != nil {
			return fmt.Errorf("failed to seed call %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}
