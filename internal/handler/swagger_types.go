package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"no model provider configured"`
}

// ExtractionExample documents a typical extraction response.
type ExtractionExample struct {
	ExtractedData []PersonExample `json:"extractedData"`
}

// PersonExample documents one extracted attendee.
type PersonExample struct {
	Name          string                `json:"name" example:"Sara Lim"`
	Designation   string                `json:"designation" example:"Volunteer Lead"`
	Identifier    string                `json:"identifier" example:"567A"`
	Contributions []ContributionExample `json:"contributions"`
}

// ContributionExample documents one contribution highlight.
type ContributionExample struct {
	Highlight string `json:"highlight" example:"Helped move chairs"`
}

// RelayRequestExample documents the webhook relay request body.
type RelayRequestExample struct {
	WebhookURL string         `json:"webhookUrl" example:"https://plumber.gov.sg/webhooks/abc123"`
	Payload    PayloadExample `json:"payload"`
}

// PayloadExample documents the payload forwarded to the webhook.
type PayloadExample struct {
	EventName     string       `json:"eventName" example:"Beach Cleanup"`
	EventDate     string       `json:"eventDate" example:"2026-10-17"`
	Data          []RowExample `json:"data"`
	Timestamp     string       `json:"timestamp" example:"2026-10-17T08:00:00.000Z"`
	TriggeredFrom string       `json:"triggered_from" example:"volunteerhub-intake"`
}

// RowExample documents one forwarded row.
type RowExample struct {
	Name          string `json:"name" example:"Sara Lim"`
	Designation   string `json:"designation" example:""`
	Identifier    string `json:"identifier" example:"567A"`
	Highlight     string `json:"highlight" example:"Helped move chairs"`
	OriginalIndex int    `json:"originalIndex" example:"0"`
}
