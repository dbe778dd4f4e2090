package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Dayflow API",
        "description": "Calendar workload scoring and slot-finding service",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedule", "description": "Composed day views with scored events"},
        {"name": "Suggestions", "description": "Best-slot search inside configured ranges"},
        {"name": "Ranges", "description": "Recurring time range definitions"},
        {"name": "EventConfigs", "description": "Per-title scoring configuration"},
        {"name": "Forecast", "description": "AI-generated day outlook"},
        {"name": "Reports", "description": "Workload report exports"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Composed schedule view",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid window"},
                    "502": {"description": "Calendar feeds unavailable"}
                }
            }
        },
        "/suggestions/slot": {
            "post": {
                "tags": ["Suggestions"],
                "summary": "Find the best slot for an activity",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SlotRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No slot available"}
                }
            }
        },
        "/ranges": {
            "get": {
                "tags": ["Ranges"],
                "summary": "List time ranges",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Ranges"],
                "summary": "Create time range",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimeRangeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ranges/{id}": {
            "get": {
                "tags": ["Ranges"],
                "summary": "Get time range",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["Ranges"],
                "summary": "Update time range",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimeRangeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Ranges"],
                "summary": "Delete time range",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/event-configs": {
            "get": {
                "tags": ["EventConfigs"],
                "summary": "List event configurations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["EventConfigs"],
                "summary": "Create or replace an event configuration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/event-configs/{title}": {
            "get": {
                "tags": ["EventConfigs"],
                "summary": "Get event configuration by title",
                "parameters": [
                    {"name": "title", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["EventConfigs"],
                "summary": "Delete event configuration",
                "parameters": [
                    {"name": "title", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/forecast": {
            "get": {
                "tags": ["Forecast"],
                "summary": "Generate a day forecast",
                "parameters": [
                    {"name": "date", "in": "query", "type": "string", "format": "date"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Forecast backend unavailable"}
                }
            }
        },
        "/reports/workload": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a workload report",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "to", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        }
    },
    "definitions": {
        "TimeRangeRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "start": {"$ref": "#/definitions/ClockTime"},
                "end": {"$ref": "#/definitions/ClockTime"},
                "days": {"type": "array", "items": {"type": "integer"}},
                "is_work": {"type": "boolean"},
                "is_enabled": {"type": "boolean"},
                "is_visible": {"type": "boolean"},
                "color": {"type": "string"}
            },
            "required": ["title", "start", "end", "days"]
        },
        "ClockTime": {
            "type": "object",
            "properties": {
                "hour": {"type": "integer"},
                "minute": {"type": "integer"}
            }
        },
        "EventConfigRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "base_difficulty": {"type": "number"},
                "type_tag": {"type": "string"},
                "color": {"type": "string"},
                "is_english": {"type": "boolean"},
                "movable": {"type": "boolean"},
                "skippable": {"type": "boolean"},
                "need_prep": {"type": "boolean"},
                "completable": {"type": "boolean"}
            },
            "required": ["title"]
        },
        "SlotRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "range_id": {"type": "string"},
                "duration_minutes": {"type": "integer"}
            },
            "required": ["date", "range_id", "duration_minutes"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
