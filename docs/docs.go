// Package docs registers the dashboard's OpenAPI description with swag so
// http-swagger can serve it at /docs/doc.json. Keep it in step with the
// handler annotations (swag init -g cmd/dashboard/main.go regenerates it).
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "FantasyComp"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Renders the dashboard: a weekly section (raw table, rank matrix, or scatter comparison) plus season averages and highs/lows. A missing table renders an inline message instead of failing.",
                "produces": ["text/html"],
                "tags": ["dashboard"],
                "summary": "Dashboard page",
                "parameters": [
                    {"type": "integer", "description": "Week (default current week)", "name": "week", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Manager filter (repeatable, empty = all)", "name": "manager", "in": "query"},
                    {"enum": ["table", "ranks", "scatter"], "type": "string", "description": "Weekly view", "name": "view", "in": "query"},
                    {"type": "string", "description": "Scatter category (default PTS)", "name": "category", "in": "query"}
                ],
                "responses": {"200": {"description": "HTML page", "schema": {"type": "string"}}}
            }
        },
        "/charts/scatter": {
            "get": {
                "description": "Renders a standalone HTML scatter chart of one category by week, one series per manager. Missing values are gaps.",
                "produces": ["text/html"],
                "tags": ["charts"],
                "summary": "Category scatter chart",
                "parameters": [
                    {"type": "string", "description": "Category name (default PTS)", "name": "category", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Manager filter (repeatable, empty = all)", "name": "manager", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "HTML page", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns basic health status and timestamp.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/health/table": {
            "get": {
                "description": "Loads the season table and reports when it was last saved.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Season table health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health/cache": {
            "get": {
                "description": "Returns in-memory cache statistics (active keys, expired keys, purges).",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Cache health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/api/v1": {
            "get": {
                "description": "Returns API name, version, status, and the configured table store.",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API info",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/api/v1/weeks": {
            "get": {
                "description": "Returns the weeks with at least one completed game, the current week, and the managers in table order.",
                "produces": ["application/json"],
                "tags": ["weeks"],
                "summary": "Get available weeks",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.WeeksReport"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/managers": {
            "get": {
                "description": "Returns every manager in order of first appearance in the season table.",
                "produces": ["application/json"],
                "tags": ["weeks"],
                "summary": "Get managers",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/weeks/{week}": {
            "get": {
                "description": "Returns one week's rows, optionally filtered to some managers, with the leader of each category among the rows shown.",
                "produces": ["application/json"],
                "tags": ["weeks"],
                "summary": "Get weekly comparison",
                "parameters": [
                    {"type": "integer", "description": "Week number", "name": "week", "in": "path", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Manager filter (repeatable, empty = all)", "name": "manager", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.WeekReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/weeks/{week}/ranks": {
            "get": {
                "description": "Ranks every team of a week per category (1 = best, ties share a rank, turnovers ascending). The manager filter limits the rows returned, not the ranking.",
                "produces": ["application/json"],
                "tags": ["weeks"],
                "summary": "Get weekly ranks",
                "parameters": [
                    {"type": "integer", "description": "Week number", "name": "week", "in": "path", "required": true},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Manager filter (repeatable, empty = all)", "name": "manager", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.RanksReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/season/averages": {
            "get": {
                "description": "Averages each category over the weeks in which the manager completed at least one game. Percentages are rounded to 3 decimals, counts and games played to 1.",
                "produces": ["application/json"],
                "tags": ["season"],
                "summary": "Get season averages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.AveragesReport"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/api/v1/season/highs-lows": {
            "get": {
                "description": "Returns the highest and lowest weekly value per category, excluding the current week and the configured anomalous weeks. The first occurrence wins ties.",
                "produces": ["application/json"],
                "tags": ["season"],
                "summary": "Get season highs and lows",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.HighsLowsReport"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        },
        "provider.GamesPlayed": {
            "type": "object",
            "properties": {
                "completed": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "provider.Record": {
            "type": "object",
            "properties": {
                "manager": {"type": "string"},
                "week": {"type": "integer"},
                "stats": {"type": "object", "additionalProperties": {"type": "number"}},
                "games_played": {"$ref": "#/definitions/provider.GamesPlayed"}
            }
        },
        "view.Cell": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "leader": {"type": "boolean"}
            }
        },
        "view.Row": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "cells": {"type": "array", "items": {"$ref": "#/definitions/view.Cell"}}
            }
        },
        "view.Grid": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/view.Row"}}
            }
        },
        "stats.Average": {
            "type": "object",
            "properties": {
                "manager": {"type": "string"},
                "weeks": {"type": "integer"},
                "stats": {"type": "object", "additionalProperties": {"type": "number"}},
                "games_played": {"type": "number"}
            }
        },
        "stats.Extreme": {
            "type": "object",
            "properties": {
                "value": {"type": "number"},
                "manager": {"type": "string"},
                "week": {"type": "integer"}
            }
        },
        "stats.RankRow": {
            "type": "object",
            "properties": {
                "manager": {"type": "string"},
                "ranks": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "dashboard.WeeksReport": {
            "type": "object",
            "properties": {
                "weeks": {"type": "array", "items": {"type": "integer"}},
                "current_week": {"type": "integer"},
                "managers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dashboard.WeekReport": {
            "type": "object",
            "properties": {
                "week": {"type": "integer"},
                "managers": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/provider.Record"}},
                "leaders": {"type": "object", "additionalProperties": {"type": "string"}},
                "grid": {"$ref": "#/definitions/view.Grid"}
            }
        },
        "dashboard.RanksReport": {
            "type": "object",
            "properties": {
                "week": {"type": "integer"},
                "ranks": {"type": "array", "items": {"$ref": "#/definitions/stats.RankRow"}},
                "grid": {"$ref": "#/definitions/view.Grid"}
            }
        },
        "dashboard.AveragesReport": {
            "type": "object",
            "properties": {
                "completed_weeks": {"type": "array", "items": {"type": "integer"}},
                "averages": {"type": "array", "items": {"$ref": "#/definitions/stats.Average"}},
                "grid": {"$ref": "#/definitions/view.Grid"}
            }
        },
        "dashboard.ExtremeEntry": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "high": {"$ref": "#/definitions/stats.Extreme"},
                "low": {"$ref": "#/definitions/stats.Extreme"},
                "high_text": {"type": "string"},
                "low_text": {"type": "string"}
            }
        },
        "dashboard.HighsLowsReport": {
            "type": "object",
            "properties": {
                "current_week": {"type": "integer"},
                "excluded_weeks": {"type": "array", "items": {"type": "integer"}},
                "records": {"type": "array", "items": {"$ref": "#/definitions/dashboard.ExtremeEntry"}},
                "grid": {"$ref": "#/definitions/view.Grid"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8501",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "FantasyComp Dashboard API",
	Description:      "Weekly and season views over the fantasy basketball season table: weekly comparison, dense ranks, season averages, highs and lows.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
