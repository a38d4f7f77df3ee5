// Package docs provides OpenAPI documentation for the market gateway.
// The documentation is served via Swagger UI at /swagger/index.html.
//
//	@title			Vetty Crypto Market API
//	@version		1.0.0
//	@description	Crypto market data gateway backed by CoinGecko.
//	@description
//	@description	## Authentication
//	@description	Obtain a token from POST /auth/token and send it as
//	@description	`Authorization: Bearer <token>` on every /api/v1 route.
//	@description
//	@description	## Pagination
//	@description	/api/v1/coins and /api/v1/categories report exact totals.
//	@description	/api/v1/coins/markets is paged by the provider: total counts the
//	@description	items on the current page and total_pages equals page_num for a
//	@description	non-empty page, 0 otherwise.
//	@description
//	@description	## Error Handling
//	@description	All errors follow RFC 7807 Problem Details (application/problem+json).
//
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT obtained from /auth/token. Format: "Bearer {token}"
package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/token": {
            "post": {
                "summary": "Issue an access token",
                "tags": ["auth"],
                "consumes": ["application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Token"}},
                    "401": {"description": "Incorrect username or password", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/v1/coins": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "List all coins",
                "tags": ["coins"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 1, "minimum": 1, "name": "page_num", "in": "query"},
                    {"type": "integer", "default": 10, "minimum": 1, "maximum": 250, "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CoinPage"}},
                    "400": {"description": "Invalid pagination", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "502": {"description": "Upstream unavailable", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/v1/coins/markets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "List coin market data in INR and CAD",
                "description": "At least one of ids or category is required. Totals describe the current page only.",
                "tags": ["coins"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Comma separated coin ids", "name": "ids", "in": "query"},
                    {"type": "string", "description": "Category id", "name": "category", "in": "query"},
                    {"type": "integer", "default": 1, "minimum": 1, "name": "page_num", "in": "query"},
                    {"type": "integer", "default": 10, "minimum": 1, "maximum": 250, "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CoinMarketPage"}},
                    "400": {"description": "Missing filter or invalid pagination", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "502": {"description": "Upstream unavailable", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/api/v1/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "summary": "List all coin categories",
                "tags": ["categories"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "default": 1, "minimum": 1, "name": "page_num", "in": "query"},
                    {"type": "integer", "default": 10, "minimum": 1, "maximum": 250, "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CategoryPage"}},
                    "400": {"description": "Invalid pagination", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}},
                    "502": {"description": "Upstream unavailable", "schema": {"$ref": "#/definitions/errors.ProblemDetails"}}
                }
            }
        },
        "/health": {
            "get": {
                "summary": "Health check",
                "tags": ["meta"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "ok or degraded", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "summary": "Application version",
                "tags": ["meta"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/config.VersionInfo"}}
                }
            }
        }
    },
    "definitions": {
        "models.Token": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"}
            }
        },
        "models.CoinSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "symbol": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "models.CategorySummary": {
            "type": "object",
            "properties": {
                "category_id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "models.CurrencyQuote": {
            "type": "object",
            "properties": {
                "price": {"type": "number", "x-nullable": true},
                "market_cap": {"type": "number", "x-nullable": true},
                "volume_24h": {"type": "number", "x-nullable": true},
                "change_24h": {"type": "number", "x-nullable": true},
                "last_updated_at": {"type": "integer", "x-nullable": true}
            }
        },
        "models.CoinMarketEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "symbol": {"type": "string"},
                "name": {"type": "string"},
                "image": {"type": "string", "x-nullable": true},
                "market_cap_rank": {"type": "integer", "x-nullable": true},
                "inr": {"$ref": "#/definitions/models.CurrencyQuote"},
                "cad": {"$ref": "#/definitions/models.CurrencyQuote"}
            }
        },
        "models.CoinPage": {
            "type": "object",
            "properties": {
                "page_num": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.CoinSummary"}}
            }
        },
        "models.CategoryPage": {
            "type": "object",
            "properties": {
                "page_num": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.CategorySummary"}}
            }
        },
        "models.CoinMarketPage": {
            "type": "object",
            "properties": {
                "page_num": {"type": "integer"},
                "per_page": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/models.CoinMarketEntry"}}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["ok", "degraded"]},
                "coingecko": {"type": "boolean"}
            }
        },
        "config.VersionInfo": {
            "type": "object",
            "properties": {
                "app_name": {"type": "string"},
                "app_version": {"type": "string"},
                "environment": {"type": "string"}
            }
        },
        "errors.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "errors.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "traceId": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/errors.ValidationError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vetty Crypto Market API",
	Description:      "Crypto market data gateway backed by CoinGecko. Tokens from /auth/token authorize the /api/v1 routes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
