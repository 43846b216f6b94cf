// Package handlers implements the REST API surface of the AuraCall service.
package handlers

import (
	"encoding/json"
	"net/http"

	"auracall/internal/config"
	"auracall/internal/routing"
	"auracall/internal/storage"
	"auracall/internal/summary"
)

type Handlers struct {
	storage    storage.Storage
	repo       *routing.Repository
	simulator  *routing.Simulator
	summarizer *summary.Client
	config     *config.Config
}

func New(store storage.Storage, repo *routing.Repository, simulator *routing.Simulator, summarizer *summary.Client, cfg *config.Config) *Handlers {
	return &Handlers{
		storage:    store,
		repo:       repo,
		simulator:  simulator,
		summarizer: summarizer,
		config:     cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
