package storage

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrCampaignReferenced is returned when deleting a campaign that still
	// has numbers assigned to it
	ErrCampaignReferenced = errors.New("campaign has assigned numbers")
)
