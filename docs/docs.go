// Package docs registra la especificación OpenAPI servida en /swagger/doc.json.
// Mantener alineado con las anotaciones godoc de los handlers (swag init -g cmd/api/main.go).
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
        "/register": {
            "post": {
                "tags": ["accounts"],
                "summary": "Registrar cuenta",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/accounts.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/accounts.accountResponse"}},
                    "400": {"description": "validación / username ya existe", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        },
        "/pets": {
            "post": {
                "tags": ["pets"],
                "summary": "Registrar mascota",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/pets.CreateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid json / validación", "schema": {"$ref": "#/definitions/detail"}},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        },
        "/requests": {
            "post": {
                "tags": ["requests"],
                "summary": "Crear solicitud de servicio",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, ID de usuario para depuración", "name": "X-Debug-User-ID", "in": "header"},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/requests.Input"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/requests.requestResponse"}},
                    "400": {"description": "invalid json / validación", "schema": {"$ref": "#/definitions/detail"}},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        },
        "/requests/pending-feedback": {
            "get": {
                "tags": ["ratings"],
                "summary": "Solicitudes pendientes de calificar",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/requests.requestResponse"}}},
                    "401": {"description": "unauthorized", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        },
        "/requests/{requestID}/accept": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Aceptar solicitud (guía)",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev, rol (user|guide)", "name": "X-Debug-Role", "in": "header"},
                    {"type": "string", "description": "ID de la solicitud", "name": "requestID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/requests.acceptResponse"}},
                    "400": {"description": "request already assigned", "schema": {"$ref": "#/definitions/detail"}},
                    "403": {"description": "only guides can perform this action", "schema": {"$ref": "#/definitions/detail"}},
                    "404": {"description": "request not found", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        },
        "/requests/{requestID}/milestones": {
            "post": {
                "tags": ["lifecycle"],
                "summary": "Registrar hito (guía asignado)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "ID de la solicitud", "name": "requestID", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/requests.recordMilestoneRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/requests.milestoneResponse"}},
                    "400": {"description": "hito inválido / fuera de orden / duplicado", "schema": {"$ref": "#/definitions/detail"}},
                    "403": {"description": "only the assigned guide can record milestones", "schema": {"$ref": "#/definitions/detail"}},
                    "404": {"description": "request not found", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        },
        "/requests/{requestID}/rating": {
            "post": {
                "tags": ["ratings"],
                "summary": "Calificar servicio",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "ID de la solicitud", "name": "requestID", "in": "path", "required": true},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ratings.RateInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ratings.ratingResponse"}},
                    "400": {"description": "no finalizada / ya calificada / sin guía / fuera de rango", "schema": {"$ref": "#/definitions/detail"}},
                    "403": {"description": "not authorized", "schema": {"$ref": "#/definitions/detail"}},
                    "404": {"description": "request not found", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        },
        "/guides/{guideID}/profile": {
            "get": {
                "tags": ["ratings"],
                "summary": "Perfil público del guía",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "ID del guía", "name": "guideID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ratings.guideProfileResponse"}},
                    "404": {"description": "account not found", "schema": {"$ref": "#/definitions/detail"}}
                }
            }
        }
    },
    "definitions": {
        "detail": {
            "type": "object",
            "properties": {"detail": {"type": "string"}}
        },
        "accounts.RegisterInput": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "password2": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "guide"]}
            }
        },
        "accounts.accountResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "role": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "pets.CreateInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string"},
                "breed": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "requests.Input": {
            "type": "object",
            "properties": {
                "service_type": {"type": "string", "enum": ["transfer", "walk", "vet_visit"]},
                "schedule_type": {"type": "string", "enum": ["immediate", "scheduled"]},
                "scheduled_datetime": {"type": "string"},
                "origin_text": {"type": "string"},
                "origin_lat": {"type": "number"},
                "origin_lng": {"type": "number"},
                "dest_text": {"type": "string"},
                "dest_lat": {"type": "number"},
                "dest_lng": {"type": "number"},
                "pet_id": {"type": "string"},
                "quick_pet_name": {"type": "string"},
                "quick_pet_species": {"type": "string"},
                "quick_pet_notes": {"type": "string"},
                "observations": {"type": "string"}
            }
        },
        "requests.milestoneResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "request_id": {"type": "string"},
                "milestone": {"type": "string", "enum": ["arrival_origin", "pet_on_board", "delivered"]},
                "recorded_at": {"type": "string"},
                "recorded_by": {"type": "string"}
            }
        },
        "requests.recordMilestoneRequest": {
            "type": "object",
            "properties": {
                "milestone": {"type": "string", "enum": ["arrival_origin", "pet_on_board", "delivered"]}
            }
        },
        "requests.acceptResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "requests.requestResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "string"},
                "service_type": {"type": "string"},
                "schedule_type": {"type": "string"},
                "scheduled_datetime": {"type": "string"},
                "origin_text": {"type": "string"},
                "dest_text": {"type": "string"},
                "pet_id": {"type": "string"},
                "observations": {"type": "string"},
                "created_at": {"type": "string"},
                "confirmed": {"type": "boolean"},
                "delivered": {"type": "boolean"},
                "assigned_guide_id": {"type": "string"},
                "milestones": {"type": "array", "items": {"$ref": "#/definitions/requests.milestoneResponse"}},
                "rating": {"$ref": "#/definitions/requests.ratingResponse"}
            }
        },
        "requests.ratingResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "stars": {"type": "integer"},
                "comment": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "ratings.RateInput": {
            "type": "object",
            "properties": {
                "stars": {"type": "integer", "minimum": 1, "maximum": 5},
                "comment": {"type": "string"}
            }
        },
        "ratings.ratingResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "request_id": {"type": "string"},
                "user_id": {"type": "string"},
                "guide_id": {"type": "string"},
                "stars": {"type": "integer"},
                "comment": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "ratings.guideProfileResponse": {
            "type": "object",
            "properties": {
                "guide_id": {"type": "string"},
                "username": {"type": "string"},
                "full_name": {"type": "string"},
                "rating_avg": {"type": "number"},
                "rating_count": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "pet-dispatch API",
	Description:      "Solicitudes de traslado, paseo y veterinaria para mascotas: asignación de guías, hitos y calificaciones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
