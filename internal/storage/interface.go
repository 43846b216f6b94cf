// Package storage defines the persistence interface for the AuraCall
// service's reference and call-log data. The routing rule and group lists are
// deliberately not stored here; they live in the routing repository.
package storage

import (
	"auracall/internal/models"
	"auracall/internal/routing"
)

// CallFilter narrows a call-log listing.
type CallFilter struct {
	Status string // filter by call status when non-empty
	Limit  int    // page size; 0 means no limit
	Offset int
}

type Storage interface {
	// Connection management
	Close() error
	Health() error

	// Targets (read-only reference data for the routing engine)
	ListTargets() ([]routing.Target, error)
	GetTarget(id string) (*routing.Target, error)

	// Campaigns
	ListCampaigns() ([]*models.Campaign, error)
	GetCampaign(id string) (*models.Campaign, error)
	CreateCampaign(campaign *models.Campaign) error
	UpdateCampaign(campaign *models.Campaign) error
	DeleteCampaign(id string) error

	// Tracked numbers
	ListNumbers() ([]*models.TrackedNumber, error)
	CreateNumbers(numbers []*models.TrackedNumber) error
	AssignNumber(id, campaignID string) error

	// Call logs
	ListCalls(filter CallFilter) ([]*models.Call, int, error)
	CreateCall(call *models.Call) error

	// Dashboard aggregates
	GetStats() (*models.Stats, error)
	GetCallVolume(days int) ([]models.CallVolumePoint, error)
	GetCallsByCampaign() ([]models.CampaignCallCount, error)
	GetStatusBreakdown() ([]models.StatusCount, error)
}
