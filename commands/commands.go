package commands

import (
	"github.com/mobile-next/touchemu/devices"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// forwarderRegistry holds the registry for device forwarder cleanup.
// It is set once at application startup via SetRegistry.
var forwarderRegistry *devices.ForwarderRegistry

// SetRegistry sets the global forwarder registry for cleanup tracking.
// This should be called once at application startup (main.go).
func SetRegistry(registry *devices.ForwarderRegistry) {
	forwarderRegistry = registry
}

// GetRegistry returns the current forwarder registry.
// Returns nil if SetRegistry has not been called yet.
func GetRegistry() *devices.ForwarderRegistry {
	return forwarderRegistry
}
