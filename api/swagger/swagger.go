package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Eclero Availability API",
        "description": "Tutor calendar availability resolution service",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Tutor calendar resolution"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/availability/calendar": {
            "get": {
                "tags": ["Availability"],
                "summary": "Resolve a tutor's bookable calendar window",
                "parameters": [
                    {"name": "tutorId", "in": "query", "type": "string", "description": "Tutor ID (UUID, takes precedence over email)"},
                    {"name": "email", "in": "query", "type": "string", "description": "Tutor email, resolved to an ID via profile lookup"},
                    {"name": "days", "in": "query", "type": "integer", "description": "Window length in days (1-60, default 30)"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/availability/calendar/export": {
            "get": {
                "tags": ["Availability"],
                "summary": "Download a tutor's calendar window as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "tutorId", "in": "query", "type": "string", "description": "Tutor ID (UUID, takes precedence over email)"},
                    {"name": "email", "in": "query", "type": "string", "description": "Tutor email"},
                    {"name": "days", "in": "query", "type": "integer", "description": "Window length in days (1-60, default 30)"},
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "DaySlots": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-03-03"},
                "slots": {
                    "type": "array",
                    "items": {"type": "string", "example": "09:00"}
                }
            }
        },
        "CalendarResponse": {
            "type": "object",
            "properties": {
                "timezone": {"type": "string", "example": "Europe/Berlin"},
                "days": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/DaySlots"}
                }
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
