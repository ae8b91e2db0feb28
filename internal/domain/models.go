package domain

import (
	"encoding/json"
	"strings"
)

// ExtractionRequest is the body accepted by the extraction endpoint. Exactly one
// of MeetingNotes or ImageData is expected; EventName is always required.
type ExtractionRequest struct {
	MeetingNotes string `json:"meetingNotes,omitempty"`
	EventName    string `json:"eventName" binding:"required,notblank"`
	ImageData    string `json:"imageData,omitempty"`
	FileType     string `json:"fileType,omitempty"`
}

// HasContent reports whether the request carries non-blank notes or an image.
func (r *ExtractionRequest) HasContent() bool {
	return strings.TrimSpace(r.MeetingNotes) != "" || r.ImageData != ""
}

// Contribution is a single evidence-bound highlight for a person.
type Contribution struct {
	Highlight string `json:"highlight"`
}

// ExtractedPerson is one attendee returned by an extraction call.
type ExtractedPerson struct {
	Name          string         `json:"name"`
	Designation   string         `json:"designation"`
	Identifier    string         `json:"identifier"`
	Contributions []Contribution `json:"contributions"`
}

// ExtractionResult is the success body of the extraction endpoint.
type ExtractionResult struct {
	ExtractedData []ExtractedPerson `json:"extractedData"`
}

// FlattenedRow is one editable table row: a (person, contribution) pair, or the
// person alone when they have no contributions.
type FlattenedRow struct {
	Name          string `json:"name"`
	Designation   string `json:"designation"`
	Identifier    string `json:"identifier"`
	Highlight     string `json:"highlight"`
	OriginalIndex int    `json:"originalIndex"`
}

// WebhookPayload is the body forwarded to the case-management webhook.
type WebhookPayload struct {
	EventName     string         `json:"eventName"`
	EventDate     string         `json:"eventDate,omitempty"`
	Data          []FlattenedRow `json:"data"`
	Timestamp     string         `json:"timestamp"`
	TriggeredFrom string         `json:"triggered_from"`
}

// RelayRequest is the body accepted by the webhook relay endpoint. Payload is
// kept raw so the relay forwards it byte-for-byte.
type RelayRequest struct {
	WebhookURL string          `json:"webhookUrl"`
	Payload    json.RawMessage `json:"payload"`
}

// RelayResponse is the body returned by the webhook relay endpoint.
type RelayResponse struct {
	OK         bool   `json:"ok"`
	Status     int    `json:"status,omitempty"`
	StatusText string `json:"statusText,omitempty"`
	Body       string `json:"body,omitempty"`
	Message    string `json:"message,omitempty"`
}

// AttendanceRequest is the body of the attendance-only extraction endpoint.
type AttendanceRequest struct {
	MeetingNotes string `json:"meetingNotes" binding:"required,notblank"`
	EventName    string `json:"eventName" binding:"required,notblank"`
}

// Attendee is a person present at an event.
type Attendee struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
}

// AttendanceResult is the success body of the attendance endpoint.
type AttendanceResult struct {
	Attendees []Attendee `json:"attendees"`
	EventName string     `json:"eventName"`
}

// CompetencyRequest is the body of the competency analysis endpoint.
type CompetencyRequest struct {
	Accomplishments string `json:"accomplishments" binding:"required,notblank"`
}

// Competency is one skill identified from a description of accomplishments.
type Competency struct {
	Skill       string      `json:"skill"`
	Proficiency Proficiency `json:"proficiency"`
	Evidence    string      `json:"evidence"`
	Impact      string      `json:"impact"`
}

// CompetencyResult is the success body of the competency endpoint.
type CompetencyResult struct {
	Competencies []Competency `json:"competencies"`
}
