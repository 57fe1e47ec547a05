package api

import (
	"encoding/json"

	"github.com/ssargent/cohbin/pkg/parse7"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string // Empty disables key checks
}

// HealthResponse reports server status
type HealthResponse struct {
	Status  string `json:"status"`
	Files   int    `json:"files"`
	Exports bool   `json:"exports"`
}

// DecodeResponse is a decoded bin file
type DecodeResponse struct {
	Kind     string              `json:"kind"`
	Entry    string              `json:"entry"`
	Records  interface{}         `json:"records"`
	Failures []parse7.Diagnostic `json:"failures"`
	Warnings []parse7.Diagnostic `json:"warnings"`
}

// ExportResponse lists the ids of exported records in record order
type ExportResponse struct {
	Kind string   `json:"kind"`
	IDs  []string `json:"ids"`
}

// ExportRecord is a stored export as returned by the API
type ExportRecord struct {
	ID   string          `json:"id"`
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}
