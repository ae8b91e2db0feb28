// Package docs registers the OpenAPI description served at /swagger/*any.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/extract": {
            "post": {
                "description": "Sends meeting notes or an image data URL to the model and returns attendees with evidence-bound contribution highlights",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["extraction"],
                "summary": "Extract attendees and contributions",
                "parameters": [
                    {
                        "description": "Notes or image plus event name",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.ExtractionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ExtractionExample"}},
                    "400": {"description": "Missing required fields or unprocessable content", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "402": {"description": "Credits required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Extraction failed", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/extract/upload": {
            "post": {
                "description": "Accepts a text, HTML, PDF, spreadsheet or image file; documents are converted to text and images are re-encoded before extraction",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["extraction"],
                "summary": "Extract from an uploaded file",
                "parameters": [
                    {"type": "file", "description": "Meeting notes file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Event name", "name": "eventName", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ExtractionExample"}},
                    "400": {"description": "Missing fields, unsupported type or file too large", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "402": {"description": "Credits required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Extraction failed", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/attendance": {
            "post": {
                "description": "Lists the people present at an event; absentees are ignored and a missing designation defaults to Member",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["extraction"],
                "summary": "Extract attendance only",
                "parameters": [
                    {
                        "description": "Meeting notes and event name",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.AttendanceRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.AttendanceResult"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "402": {"description": "Credits required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Extraction failed", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/competencies": {
            "post": {
                "description": "Identifies skills with a proficiency level, evidence and impact from a description of accomplishments",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["extraction"],
                "summary": "Analyze competencies",
                "parameters": [
                    {
                        "description": "Accomplishments",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.CompetencyRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.CompetencyResult"}},
                    "400": {"description": "Missing required fields", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "402": {"description": "Credits required", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Rate limited", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Analysis failed", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/webhooks/forward": {
            "post": {
                "description": "Validates the target against the allow-list and POSTs the payload. The upstream status is reported in the body; a non-2xx upstream still answers 200.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["webhooks"],
                "summary": "Forward a payload to the case-management webhook",
                "parameters": [
                    {
                        "description": "Target URL and payload",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.RelayRequestExample"}
                    }
                ],
                "responses": {
                    "200": {"description": "Upstream was reached", "schema": {"$ref": "#/definitions/domain.RelayResponse"}},
                    "400": {"description": "URL rejected", "schema": {"$ref": "#/definitions/domain.RelayResponse"}},
                    "500": {"description": "Upstream unreachable", "schema": {"$ref": "#/definitions/domain.RelayResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ExtractionRequest": {
            "type": "object",
            "required": ["eventName"],
            "properties": {
                "eventName": {"type": "string"},
                "meetingNotes": {"type": "string"},
                "imageData": {"type": "string"},
                "fileType": {"type": "string"}
            }
        },
        "domain.AttendanceRequest": {
            "type": "object",
            "required": ["eventName", "meetingNotes"],
            "properties": {
                "eventName": {"type": "string"},
                "meetingNotes": {"type": "string"}
            }
        },
        "domain.Attendee": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "designation": {"type": "string"}
            }
        },
        "domain.AttendanceResult": {
            "type": "object",
            "properties": {
                "attendees": {"type": "array", "items": {"$ref": "#/definitions/domain.Attendee"}},
                "eventName": {"type": "string"}
            }
        },
        "domain.CompetencyRequest": {
            "type": "object",
            "required": ["accomplishments"],
            "properties": {
                "accomplishments": {"type": "string"}
            }
        },
        "domain.Competency": {
            "type": "object",
            "properties": {
                "skill": {"type": "string"},
                "proficiency": {"type": "string", "enum": ["Beginner", "Intermediate", "Advanced", "Expert"]},
                "evidence": {"type": "string"},
                "impact": {"type": "string"}
            }
        },
        "domain.CompetencyResult": {
            "type": "object",
            "properties": {
                "competencies": {"type": "array", "items": {"$ref": "#/definitions/domain.Competency"}}
            }
        },
        "domain.RelayResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "status": {"type": "integer"},
                "statusText": {"type": "string"},
                "body": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Rate limit exceeded. Please try again in a few moments."},
                "code": {"type": "string", "example": "RATE_LIMITED"}
            }
        },
        "handler.ContributionExample": {
            "type": "object",
            "properties": {
                "highlight": {"type": "string", "example": "Helped move chairs"}
            }
        },
        "handler.PersonExample": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Sara Lim"},
                "designation": {"type": "string", "example": "Volunteer Lead"},
                "identifier": {"type": "string", "example": "567A"},
                "contributions": {"type": "array", "items": {"$ref": "#/definitions/handler.ContributionExample"}}
            }
        },
        "handler.ExtractionExample": {
            "type": "object",
            "properties": {
                "extractedData": {"type": "array", "items": {"$ref": "#/definitions/handler.PersonExample"}}
            }
        },
        "handler.RowExample": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Sara Lim"},
                "designation": {"type": "string", "example": ""},
                "identifier": {"type": "string", "example": "567A"},
                "highlight": {"type": "string", "example": "Helped move chairs"},
                "originalIndex": {"type": "integer", "example": 0}
            }
        },
        "handler.PayloadExample": {
            "type": "object",
            "properties": {
                "eventName": {"type": "string", "example": "Beach Cleanup"},
                "eventDate": {"type": "string", "example": "2026-10-17"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/handler.RowExample"}},
                "timestamp": {"type": "string", "example": "2026-10-17T08:00:00.000Z"},
                "triggered_from": {"type": "string", "example": "volunteerhub-intake"}
            }
        },
        "handler.RelayRequestExample": {
            "type": "object",
            "properties": {
                "webhookUrl": {"type": "string", "example": "https://plumber.gov.sg/webhooks/abc123"},
                "payload": {"$ref": "#/definitions/handler.PayloadExample"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "error": {"type": "string", "example": "no model provider configured"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "VolunteerHub API",
	Description:      "Extracts attendance and contribution highlights from meeting notes and relays rows to the case-management webhook.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
