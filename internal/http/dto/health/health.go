// Package health contiene los DTOs de /readyz.
package health

import "time"

// HealthStatus es el estado de un componente: ok | error | disabled.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse es el body de GET /readyz.
// Status: ready | degraded | unavailable.
type HealthResponse struct {
	Status     string                  `json:"status"`
	Version    string                  `json:"version,omitempty"`
	Driver     string                  `json:"driver,omitempty"`
	Components map[string]HealthStatus `json:"components"`
	Timestamp  time.Time               `json:"timestamp"`
}
