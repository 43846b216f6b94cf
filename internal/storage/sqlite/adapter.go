package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"auracall/internal/models"
	"auracall/internal/routing"
	"auracall/internal/storage"
)

// Adapter implements storage.Storage on a local SQLite database.
type Adapter struct {
	db     *sql.DB
	config *Config
}

func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SQLite config: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps writes serialized and makes :memory: databases
	// behave; a second pooled connection would see its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	adapter := &Adapter{
		db:     db,
		config: config,
	}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := adapter.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return adapter, nil
}

func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *Adapter) Health() error {
	return a.db.Ping()
}

func (a *Adapter) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS targets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			buyer TEXT NOT NULL DEFAULT '',
			destination TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Active'
		)`,
		`CREATE TABLE IF NOT EXISTS campaigns (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Active',
			target_ids TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS numbers (
			id TEXT PRIMARY KEY,
			phone_number TEXT NOT NULL UNIQUE,
			campaign_id TEXT,
			status TEXT NOT NULL DEFAULT 'Available'
		)`,
		`CREATE TABLE IF NOT EXISTS calls (
			id TEXT PRIMARY KEY,
			caller_id TEXT NOT NULL,
			campaign_id TEXT NOT NULL DEFAULT '',
			target_id TEXT NOT NULL DEFAULT '',
			duration INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			cost REAL NOT NULL DEFAULT 0,
			revenue REAL NOT NULL DEFAULT 0,
			timestamp DATETIME NOT NULL,
			recording_url TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_calls_timestamp ON calls(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_calls_status ON calls(status)`,
		`CREATE INDEX IF NOT EXISTS idx_numbers_campaign ON numbers(campaign_id)`,
	}

	for _, query := range queries {
		if _, err := a.db.Exec(query); err != nil {
			return fmt.Errorf("migration query failed: %w", err)
		}
	}

	return nil
}

// Targets

func (a *Adapter) ListTargets() ([]routing.Target, error) {
	rows, err := a.db.Query(`SELECT id, name, buyer, destination, status FROM targets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []routing.Target
	for rows.Next() {
		var t routing.Target
		if err := rows.Scan(&t.ID, &t.Name, &t.Buyer, &t.Destination, &t.Status); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func (a *Adapter) GetTarget(id string) (*routing.Target, error) {
	var t routing.Target
	err := a.db.QueryRow(`SELECT id, name, buyer, destination, status FROM targets WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Buyer, &t.Destination, &t.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: target %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	return &t, nil
}

// Campaigns

func (a *Adapter) ListCampaigns() ([]*models.Campaign, error) {
	rows, err := a.db.Query(`SELECT id, name, status, target_ids FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

func (a *Adapter) GetCampaign(id string) (*models.Campaign, error) {
	row := a.db.QueryRow(`SELECT id, name, status, target_ids FROM campaigns WHERE id = ?`, id)

	campaign, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: campaign %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (a *Adapter) CreateCampaign(campaign *models.Campaign) error {
	targetIDs, err := json.Marshal(campaign.TargetIDs)
	if err != nil {
		return fmt.Errorf("failed to encode target ids: %w", err)
	}

	_, err = a.db.Exec(`INSERT INTO campaigns (id, name, status, target_ids) VALUES (?, ?, ?, ?)`,
		campaign.ID, campaign.Name, campaign.Status, string(targetIDs))
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (a *Adapter) UpdateCampaign(campaign *models.Campaign) error {
	targetIDs, err := json.Marshal(campaign.TargetIDs)
	if err != nil {
		return fmt.Errorf("failed to encode target ids: %w", err)
	}

	result, err := a.db.Exec(`UPDATE campaigns SET name = ?, status = ?, target_ids = ? WHERE id = ?`,
		campaign.Name, campaign.Status, string(targetIDs), campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: campaign %s", storage.ErrNotFound, campaign.ID)
	}
	return nil
}

func (a *Adapter) DeleteCampaign(id string) error {
	var assigned int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM numbers WHERE campaign_id = ?`, id).Scan(&assigned); err != nil {
		return fmt.Errorf("failed to check campaign references: %w", err)
	}
	if assigned > 0 {
		return fmt.Errorf("%w: %d numbers", storage.ErrCampaignReferenced, assigned)
	}

	result, err := a.db.Exec(`DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: campaign %s", storage.ErrNotFound, id)
	}
	return nil
}

// Tracked numbers

func (a *Adapter) ListNumbers() ([]*models.TrackedNumber, error) {
	rows, err := a.db.Query(`SELECT id, phone_number, campaign_id, status FROM numbers ORDER BY phone_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list numbers: %w", err)
	}
	defer rows.Close()

	var numbers []*models.TrackedNumber
	for rows.Next() {
		var n models.TrackedNumber
		var campaignID sql.NullString
		if err := rows.Scan(&n.ID, &n.PhoneNumber, &campaignID, &n.Status); err != nil {
			return nil, fmt.Errorf("failed to scan number: %w", err)
		}
		n.CampaignID = campaignID.String
		numbers = append(numbers, &n)
	}
	return numbers, rows.Err()
}

func (a *Adapter) CreateNumbers(numbers []*models.TrackedNumber) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO numbers (id, phone_number, campaign_id, status) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range numbers {
		campaignID := sql.NullString{String: n.CampaignID, Valid: n.CampaignID != ""}
		if _, err := stmt.Exec(n.ID, n.PhoneNumber, campaignID, n.Status); err != nil {
			return fmt.Errorf("failed to insert number %s: %w", n.PhoneNumber, err)
		}
	}

	return tx.Commit()
}

func (a *Adapter) AssignNumber(id, campaignID string) error {
	status := models.NumberAssigned
	dbCampaignID := sql.NullString{String: campaignID, Valid: campaignID != ""}
	if campaignID == "" {
		status = models.NumberAvailable
	}

	result, err := a.db.Exec(`UPDATE numbers SET campaign_id = ?, status = ? WHERE id = ?`,
		dbCampaignID, status, id)
	if err != nil {
		return fmt.Errorf("failed to assign number: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: number %s", storage.ErrNotFound, id)
	}
	return nil
}

// Call logs

func (a *Adapter) ListCalls(filter storage.CallFilter) ([]*models.Call, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Status != "" {
		where = " WHERE status = ?"
		args = append(args, filter.Status)
	}

	var total int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM calls`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count calls: %w", err)
	}

	query := `SELECT id, caller_id, campaign_id, target_id, duration, status, cost, revenue, timestamp, recording_url, notes
		FROM calls` + where + ` ORDER BY timestamp DESC`
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := a.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list calls: %w", err)
	}
	defer rows.Close()

	var calls []*models.Call
	for rows.Next() {
		var c models.Call
		if err := rows.Scan(&c.ID, &c.CallerID, &c.CampaignID, &c.TargetID, &c.Duration,
			&c.Status, &c.Cost, &c.Revenue, &c.Timestamp, &c.RecordingURL, &c.Notes); err != nil {
			return nil, 0, fmt.Errorf("failed to scan call: %w", err)
		}
		calls = append(calls, &c)
	}
	return calls, total, rows.Err()
}

func (a *Adapter) CreateCall(call *models.Call) error {
	_, err := a.db.Exec(`INSERT INTO calls
		(id, caller_id, campaign_id, target_id, duration, status, cost, revenue, timestamp, recording_url, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		call.ID, call.CallerID, call.CampaignID, call.TargetID, call.Duration,
		call.Status, call.Cost, call.Revenue, call.Timestamp, call.RecordingURL, call.Notes)
	if err != nil {
		return fmt.Errorf("failed to create call: %w", err)
	}
	return nil
}

// Dashboard aggregates

func (a *Adapter) GetStats() (*models.Stats, error) {
	stats := &models.Stats{}
	err := a.db.QueryRow(`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'Answered' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'Missed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(revenue), 0),
			COALESCE(SUM(cost), 0)
		FROM calls`).
		Scan(&stats.TotalCalls, &stats.AnsweredCalls, &stats.MissedCalls, &stats.TotalRevenue, &stats.TotalCost)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if stats.TotalCalls > 0 {
		stats.AnswerRate = float64(stats.AnsweredCalls) / float64(stats.TotalCalls)
	}
	return stats, nil
}

func (a *Adapter) GetCallVolume(days int) ([]models.CallVolumePoint, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	rows, err := a.db.Query(`SELECT date(timestamp), COUNT(*)
		FROM calls WHERE timestamp >= ?
		GROUP BY date(timestamp) ORDER BY date(timestamp)`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get call volume: %w", err)
	}
	defer rows.Close()

	var points []models.CallVolumePoint
	for rows.Next() {
		var p models.CallVolumePoint
		if err := rows.Scan(&p.Date, &p.Calls); err != nil {
			return nil, fmt.Errorf("failed to scan volume point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (a *Adapter) GetCallsByCampaign() ([]models.CampaignCallCount, error) {
	rows, err := a.db.Query(`SELECT COALESCE(c.name, calls.campaign_id), COUNT(*)
		FROM calls LEFT JOIN campaigns c ON c.id = calls.campaign_id
		GROUP BY calls.campaign_id ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get calls by campaign: %w", err)
	}
	defer rows.Close()

	var counts []models.CampaignCallCount
	for rows.Next() {
		var c models.CampaignCallCount
		if err := rows.Scan(&c.Campaign, &c.Calls); err != nil {
			return nil, fmt.Errorf("failed to scan campaign count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (a *Adapter) GetStatusBreakdown() ([]models.StatusCount, error) {
	rows, err := a.db.Query(`SELECT status, COUNT(*) FROM calls GROUP BY status ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get status breakdown: %w", err)
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row scanner) (*models.Campaign, error) {
	var campaign models.Campaign
	var targetIDs string
	if err := row.Scan(&campaign.ID, &campaign.Name, &campaign.Status, &targetIDs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(targetIDs), &campaign.TargetIDs); err != nil {
		return nil, fmt.Errorf("failed to decode target ids: %w", err)
	}
	return &campaign, nil
}
