// Package docs holds the swagger description of the property service.
package docs

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
        "/properties": {
            "get": {
                "description": "Returns every visible property, newest first",
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "List visible properties",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.Property"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/properties/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Search properties",
                "parameters": [
                    {"type": "string", "description": "Text matched against title, address, city and state", "name": "query", "in": "query"},
                    {"enum": ["Rent", "Sale", "Shortlet"], "type": "string", "description": "Listing type", "name": "type", "in": "query"},
                    {"type": "string", "description": "Category", "name": "category", "in": "query"},
                    {"type": "string", "description": "State", "name": "state", "in": "query"},
                    {"type": "integer", "description": "Minimum bedrooms", "name": "bedrooms", "in": "query"},
                    {"type": "integer", "description": "Minimum bathrooms", "name": "bathrooms", "in": "query"},
                    {"type": "integer", "description": "Minimum toilets", "name": "toilets", "in": "query"},
                    {"type": "integer", "description": "Minimum area", "name": "area", "in": "query"},
                    {"type": "string", "description": "Required feature", "name": "feature", "in": "query"},
                    {"type": "number", "description": "Minimum price", "name": "min", "in": "query"},
                    {"type": "number", "description": "Maximum price", "name": "max", "in": "query"},
                    {"enum": ["asc price", "desc price", "asc date", "desc date"], "type": "string", "description": "Sort order", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/properties/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Get property by ID",
                "parameters": [{"type": "string", "description": "Property ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/properties/{id}/related": {
            "get": {
                "description": "Up to four visible properties sharing the category or city",
                "produces": ["application/json"],
                "tags": ["properties"],
                "summary": "Related properties",
                "parameters": [{"type": "string", "description": "Property ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/properties": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin-properties"],
                "summary": "Admin property table",
                "parameters": [
                    {"type": "string", "description": "Matches title, city, state or category", "name": "search", "in": "query"},
                    {"type": "string", "description": "Listing type", "name": "type", "in": "query"},
                    {"enum": ["price-asc", "price-desc", "newest"], "type": "string", "description": "Sort order", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin-properties"],
                "summary": "Upload a property",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData", "required": true},
                    {"type": "number", "description": "Price", "name": "price", "in": "formData", "required": true},
                    {"enum": ["Rent", "Sale", "Shortlet"], "type": "string", "description": "Listing type", "name": "type", "in": "formData"},
                    {"type": "string", "description": "Category", "name": "category", "in": "formData", "required": true},
                    {"type": "string", "description": "Country", "name": "country", "in": "formData", "required": true},
                    {"type": "string", "description": "State", "name": "state", "in": "formData", "required": true},
                    {"type": "string", "description": "City", "name": "city", "in": "formData", "required": true},
                    {"type": "string", "description": "Address", "name": "address", "in": "formData", "required": true},
                    {"type": "string", "description": "JSON array of features", "name": "features", "in": "formData", "required": true},
                    {"type": "file", "description": "Images", "name": "images", "in": "formData", "required": true},
                    {"type": "file", "description": "Videos", "name": "videos", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/admin/properties/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "A JSON body patches the given fields. A multipart body replaces every field, keeps existingImages and appends newImages and newVideos.",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin-properties"],
                "summary": "Update a property",
                "parameters": [{"type": "string", "description": "Property ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin-properties"],
                "summary": "Show or hide a property",
                "parameters": [
                    {"type": "string", "description": "Property ID", "name": "id", "in": "path", "required": true},
                    {"description": "{\"visible\": true}", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin-properties"],
                "summary": "Delete a property",
                "parameters": [{"type": "string", "description": "Property ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "entity.Property": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "type": {"type": "string"},
                "category": {"type": "string"},
                "bedrooms": {"type": "integer"},
                "bathrooms": {"type": "integer"},
                "toilets": {"type": "integer"},
                "area": {"type": "number"},
                "country": {"type": "string"},
                "state": {"type": "string"},
                "city": {"type": "string"},
                "address": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}},
                "images": {"type": "array", "items": {"type": "string"}},
                "videos": {"type": "array", "items": {"type": "string"}},
                "visible": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Property Service API",
	Description:      "Public property catalogue and admin listing management",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
