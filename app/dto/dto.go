// Package dto contains Data Transfer Objects for API request and response structures
package dto

// StatusResponse is the body returned for recognized business failures.
// The boundary intentionally answers these with HTTP 200 and a status
// message rather than an error code.
type StatusResponse struct {
	Status string `json:"status"`
}

// HeartbeatResponse is the body of the root heartbeat endpoint
type HeartbeatResponse map[string]string
