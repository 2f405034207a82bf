// Package docs registers the OpenAPI document served by swaggerkit
// keep it in step with the handler annotations under services/*/http
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {"title": "{{.Title}}", "description": "{{.Description}}", "version": "{{.Version}}"},
  "paths": {
    "/answers/ask": {
      "post": {
        "tags": ["Answers"],
        "summary": "Answer a question about videos, creators and snapshots",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AskInput"}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AskOutput"}}}}}
      }
    },
    "/answers/compile": {
      "post": {
        "tags": ["Answers"],
        "summary": "Show the query a question compiles to without running it",
        "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/AskInput"}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CompileOutput"}}}}}
      }
    },
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Health check", "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness with database ping", "responses": {"200": {"description": "ok"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build info", "responses": {"200": {"description": "ok"}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service info and uptime", "responses": {"200": {"description": "ok"}}}}
  },
  "components": {
    "schemas": {
      "AskInput": {
        "type": "object",
        "required": ["text"],
        "properties": {"text": {"type": "string", "example": "Сколько всего видео есть в системе?"}}
      },
      "AskOutput": {
        "type": "object",
        "properties": {
          "answer": {"type": "string", "example": "358"},
          "intent": {"type": "string", "example": "total_videos"}
        }
      },
      "CompileOutput": {
        "type": "object",
        "properties": {
          "intent": {"type": "string", "example": "total_videos"},
          "sql": {"type": "string", "example": "SELECT COUNT(*)::bigint FROM videos"},
          "args": {"type": "array", "items": {}}
        }
      }
    }
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "videobot API",
	Description:      "Natural language questions over the video analytics dataset",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
