// Package apidocs registers the OpenAPI 2.0 document served by Swagger UI
// when the server runs with server.dev_mode. Keep it in step with the routes
// and the @Router annotations on the handlers.
package apidocs

import "github.com/swaggo/swag"

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
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Bearer token", "schema": {"$ref": "#/definitions/auth.Token"}},
                    "400": {"description": "Missing password", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "401": {"description": "Wrong password", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "503": {"description": "Admin access not configured", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/auth/status": {
            "get": {
                "tags": ["auth"],
                "summary": "Admin login availability",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Status", "schema": {"$ref": "#/definitions/auth.StatusResponse"}}
                }
            }
        },
        "/settings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["settings"],
                "summary": "List settings",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Persisted settings", "schema": {"type": "array", "items": {"$ref": "#/definitions/services.Setting"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/settings/themes": {
            "get": {
                "tags": ["settings"],
                "summary": "List themes",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Theme catalog in order", "schema": {"type": "array", "items": {"$ref": "#/definitions/settings.ThemeSummary"}}}
                }
            }
        },
        "/settings/themes/active": {
            "get": {
                "tags": ["settings"],
                "summary": "Get active theme",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Active theme", "schema": {"$ref": "#/definitions/settings.ActiveThemeResponse"}}
                }
            },
            "put": {
                "tags": ["settings"],
                "summary": "Select theme",
                "description": "Unknown ids leave the active theme unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/settings.ActiveThemeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Active theme after selection", "schema": {"$ref": "#/definitions/settings.ActiveThemeResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "500": {"description": "Theme applied but not saved", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/settings/themes/{id}": {
            "get": {
                "tags": ["settings"],
                "summary": "Get theme",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Theme with variables", "schema": {"$ref": "#/definitions/settings.ThemeDetail"}},
                    "404": {"description": "Unknown theme", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/products": {
            "get": {
                "tags": ["catalog"],
                "summary": "List products",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Products", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Product"}}},
                    "400": {"description": "Invalid limit", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "504": {"description": "Upstream timeout", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/products/featured": {
            "get": {
                "tags": ["catalog"],
                "summary": "Home page cards",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Product cards", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Card"}}}
                }
            }
        },
        "/products/categories": {
            "get": {
                "tags": ["catalog"],
                "summary": "List categories",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Category names", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/products/category/{category}": {
            "get": {
                "tags": ["catalog"],
                "summary": "Products in a category",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "category", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Products", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.Product"}}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["catalog"],
                "summary": "Get product",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Product", "schema": {"$ref": "#/definitions/catalog.Product"}},
                    "404": {"description": "Unknown product", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/products/cache": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["catalog"],
                "summary": "Clear the response cache",
                "responses": {
                    "204": {"description": "Cache cleared"}
                }
            }
        },
        "/contact": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["contact"],
                "summary": "List submissions",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Newest first", "schema": {"type": "array", "items": {"$ref": "#/definitions/contact.Submission"}}}
                }
            },
            "post": {
                "tags": ["contact"],
                "summary": "Submit the contact form",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/contact.Request"}}
                ],
                "responses": {
                    "201": {"description": "Stored submission", "schema": {"$ref": "#/definitions/contact.Submission"}},
                    "400": {"description": "Malformed body", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "422": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/contact/subjects": {
            "get": {
                "tags": ["contact"],
                "summary": "List subjects",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Subject keys", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/carts": {
            "post": {
                "tags": ["cart"],
                "summary": "Create cart",
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Empty cart", "schema": {"$ref": "#/definitions/cart.Cart"}}
                }
            }
        },
        "/carts/{id}": {
            "get": {
                "tags": ["cart"],
                "summary": "Get cart",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Cart", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "404": {"description": "Unknown cart", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/carts/{id}/items": {
            "post": {
                "tags": ["cart"],
                "summary": "Add item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.AddItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated cart", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "400": {"description": "Invalid quantity", "schema": {"$ref": "#/definitions/server.Problem"}},
                    "404": {"description": "Unknown cart or product", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/carts/{id}/items/{product_id}": {
            "delete": {
                "tags": ["cart"],
                "summary": "Remove item",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "product_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated cart", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "404": {"description": "Unknown cart or item", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Admin JWT. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
            }
        },
        "auth.Token": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "Bearer"},
                "expires_in": {"type": "integer"},
                "expires_at": {"type": "string", "format": "date-time"}
            }
        },
        "auth.StatusResponse": {
            "type": "object",
            "properties": {
                "enabled": {"type": "boolean"}
            }
        },
        "server.Problem": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "services.Setting": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "theme.Variable": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "settings.ThemeSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "marker": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "settings.ThemeDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "marker": {"type": "string"},
                "variables": {"type": "array", "items": {"$ref": "#/definitions/theme.Variable"}}
            }
        },
        "settings.ActiveThemeRequest": {
            "type": "object",
            "properties": {
                "theme_id": {"type": "string", "example": "theme2"}
            }
        },
        "settings.ActiveThemeResponse": {
            "type": "object",
            "properties": {
                "theme_id": {"type": "string"},
                "name": {"type": "string"},
                "marker": {"type": "string"},
                "variables": {"type": "array", "items": {"$ref": "#/definitions/theme.Variable"}}
            }
        },
        "catalog.Rating": {
            "type": "object",
            "properties": {
                "rate": {"type": "number"},
                "count": {"type": "integer"}
            }
        },
        "catalog.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "price": {"type": "number"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "rating": {"$ref": "#/definitions/catalog.Rating"}
            }
        },
        "catalog.Card": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "image": {"type": "string"},
                "price": {"type": "string", "example": "$109.95"},
                "excerpt": {"type": "string"},
                "stars": {"type": "string"},
                "rating_count": {"type": "integer"}
            }
        },
        "contact.Request": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string", "enum": ["general", "support", "business", "careers", "feedback"]},
                "message": {"type": "string"}
            }
        },
        "contact.Submission": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "cart.AddItemRequest": {
            "type": "object",
            "properties": {
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer", "example": 1}
            }
        },
        "cart.Line": {
            "type": "object",
            "properties": {
                "product_id": {"type": "integer"},
                "title": {"type": "string"},
                "unit_price": {"type": "number"},
                "quantity": {"type": "integer"},
                "line_total": {"type": "number"}
            }
        },
        "cart.Cart": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/cart.Line"}},
                "item_count": {"type": "integer"},
                "total": {"type": "number"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds the exported metadata; Version is filled in at startup.
var SwaggerInfo = &swag.Spec{
	Version:          "dev",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Themeable storefront: theme settings, product catalog, contact form and carts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
