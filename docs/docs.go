// Package docs provides the generated OpenAPI document served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a salon and its owner account",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Email or phone already registered"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with email or phone",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/customers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "List the salon's customers",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["customers"],
                "summary": "Create a customer",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Phone already exists"}
                }
            }
        },
        "/staff": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["staff"],
                "summary": "List the salon's staff members",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["staff"],
                "summary": "Create a staff member",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/services": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["services"],
                "summary": "List the salon's services",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["services"],
                "summary": "Create a service",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/reservations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "List reservations, filterable by staff, customer, status or date",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Create a reservation",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Slot not available"}
                }
            }
        },
        "/reservations/availability": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Free slots for a staff member on a date",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reservations/{id}/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Confirm a pending reservation",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Invalid status transition"}
                }
            }
        },
        "/reservations/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reservations"],
                "summary": "Cancel a reservation",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Already cancelled"}
                }
            }
        },
        "/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "List bookings",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Create a booking for reservations or walk-in services",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/bookings/{id}/pay": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Settle a pending booking",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Invalid status transition"}
                }
            }
        },
        "/reviews": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reviews"],
                "summary": "List reviews",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["reviews"],
                "summary": "Review a completed reservation",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Reservation not completed or already reviewed"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Today's schedule and headline numbers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Revenue and top performer analytics",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SalonBook API",
	Description:      "Beauty salon booking platform backend",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
