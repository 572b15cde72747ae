// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/usuarios/login": {
            "post": {
                "tags": ["usuarios"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/usuarios": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["usuarios"],
                "summary": "List users",
                "parameters": [{"type": "string", "description": "Filter by role", "name": "rol", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["usuarios"],
                "summary": "Register a user",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "nombre", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "rol", "in": "formData", "required": true},
                    {"type": "string", "name": "vendedorId", "in": "formData"},
                    {"type": "file", "name": "imagen", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/usuarios/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["usuarios"],
                "summary": "Update a user",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "nombre", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData"},
                    {"type": "string", "name": "password", "in": "formData"},
                    {"type": "file", "name": "imagen", "in": "formData"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["usuarios"],
                "summary": "Delete a user",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}}
            }
        },
        "/usuarios/vendedor/{vendedorId}/clientes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["usuarios"],
                "summary": "List a vendor's clients",
                "parameters": [{"type": "string", "name": "vendedorId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.ClientSummary"}}}}
            }
        },
        "/pedidos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "List orders",
                "parameters": [{"type": "string", "name": "cliente_id", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.orderResponse"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Create an order",
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.orderResponse"}}}
            }
        },
        "/pedidos/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Get an order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.orderResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Update order fields",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.orderResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Delete an order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}}
            }
        },
        "/pedidos/{id}/estado": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Advance the order status",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.setStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.orderResponse"}}}
            }
        },
        "/pedidos/{id}/cancelar": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Cancel an order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.orderMessageResponse"}}}
            }
        },
        "/pedidos/{id}/reactivar": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Reactivate a cancelled order",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.orderMessageResponse"}}}
            }
        },
        "/pedidos/{id}/eventos": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Order audit trail",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.orderEventResponse"}}}}
            }
        },
        "/pedidos/vendedor/{vendedorId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["pedidos"],
                "summary": "Orders of a vendor's clients",
                "parameters": [{"type": "string", "name": "vendedorId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.orderResponse"}}}}
            }
        }
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "rol": {"type": "string"},
                "imagen_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.ClientSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "nombre": {"type": "string"},
                "email": {"type": "string"},
                "imagen_url": {"type": "string"}
            }
        },
        "handler.errorBody": {"type": "object", "properties": {"error": {"type": "string", "example": "order not found"}}},
        "handler.messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "handler.loginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "handler.loginResponse": {"type": "object", "properties": {"token": {"type": "string"}, "usuario": {"$ref": "#/definitions/domain.User"}}},
        "handler.setStatusRequest": {"type": "object", "required": ["nuevoEstado"], "properties": {"nuevoEstado": {"type": "string"}}},
        "handler.orderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cliente_id": {"type": "string"},
                "estado": {"type": "string", "example": "solicitado"},
                "cancelado": {"type": "boolean"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.orderMessageResponse": {"type": "object", "properties": {"message": {"type": "string"}, "pedido": {"$ref": "#/definitions/handler.orderResponse"}}},
        "handler.orderEventResponse": {
            "type": "object",
            "properties": {
                "tipo": {"type": "string", "example": "estado"},
                "estado_anterior": {"type": "string"},
                "estado_nuevo": {"type": "string"},
                "actor_id": {"type": "string"},
                "ocurrido_en": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pedidos API",
	Description:      "Users, vendor-client relationships and orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
