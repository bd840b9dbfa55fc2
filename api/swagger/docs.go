// Package swagger holds the OpenAPI description served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/brandkit/main.go -o api/swagger
package swagger

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
        "/health": {
            "get": {
                "summary": "Health check",
                "tags": [
                    "system"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/server.HealthResponse"
                        }
                    }
                }
            }
        },
        "/settings/themes/presets": {
            "get": {
                "summary": "List presets",
                "tags": [
                    "settings"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "List of presets",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/theme.PresetEntry"
                            }
                        }
                    }
                }
            },
            "post": {
                "summary": "Register preset",
                "tags": [
                    "settings"
                ],
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Preset",
                        "name": "preset",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/settings.PresetRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Registered preset",
                        "schema": {
                            "$ref": "#/definitions/theme.PresetEntry"
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    },
                    "409": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/settings/themes/presets/{id}": {
            "get": {
                "summary": "Get preset",
                "tags": [
                    "settings"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Preset ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Preset",
                        "schema": {
                            "$ref": "#/definitions/theme.PresetEntry"
                        }
                    },
                    "404": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme": {
            "get": {
                "summary": "Get tenant theme",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resolved theme",
                        "schema": {
                            "$ref": "#/definitions/themestore.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme/variables": {
            "get": {
                "summary": "Get theme variables",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Variables in schema order",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/theme.Pair"
                            }
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme.css": {
            "get": {
                "summary": "Get theme stylesheet",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "text/css"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "CSS",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "304": {
                        "description": "Not modified"
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme/preset": {
            "put": {
                "summary": "Select preset",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/settings.SelectPresetRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resolved theme",
                        "schema": {
                            "$ref": "#/definitions/themestore.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    },
                    "404": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme/dark-mode": {
            "put": {
                "summary": "Set dark mode",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/settings.DarkModeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resolved theme",
                        "schema": {
                            "$ref": "#/definitions/themestore.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme/dark-mode/toggle": {
            "post": {
                "summary": "Toggle dark mode",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resolved theme",
                        "schema": {
                            "$ref": "#/definitions/themestore.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme/overrides": {
            "patch": {
                "summary": "Patch overrides",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "application/json"
                ],
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Patch",
                        "name": "patch",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resolved theme",
                        "schema": {
                            "$ref": "#/definitions/themestore.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        },
        "/tenants/{tenant}/theme/reset": {
            "post": {
                "summary": "Reset theme",
                "tags": [
                    "themes"
                ],
                "produces": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Tenant ID",
                        "name": "tenant",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Resolved theme",
                        "schema": {
                            "$ref": "#/definitions/themestore.Snapshot"
                        }
                    },
                    "400": {
                        "description": "Problem",
                        "schema": {
                            "$ref": "#/definitions/settings.SettingsProblemDetail"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string",
                    "example": "ok"
                },
                "service": {
                    "type": "string",
                    "example": "brandkit"
                },
                "version": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "settings.SettingsProblemDetail": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string",
                    "example": "https://brandkit.dev/problems/settings-error"
                },
                "title": {
                    "type": "string",
                    "example": "Bad Request"
                },
                "status": {
                    "type": "integer",
                    "example": 400
                },
                "detail": {
                    "type": "string",
                    "example": "theme: colors.brand: unknown key"
                }
            }
        },
        "settings.PresetRequest": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string",
                    "example": "acme-brand"
                },
                "name": {
                    "type": "string",
                    "example": "Acme"
                },
                "description": {
                    "type": "string"
                },
                "version": {
                    "type": "string",
                    "example": "1.0.0"
                },
                "tokens": {
                    "type": "object"
                }
            }
        },
        "settings.SelectPresetRequest": {
            "type": "object",
            "properties": {
                "preset_id": {
                    "type": "string",
                    "example": "modern"
                }
            }
        },
        "settings.DarkModeRequest": {
            "type": "object",
            "properties": {
                "dark_mode": {
                    "type": "boolean",
                    "example": true
                }
            }
        },
        "theme.PresetEntry": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "version": {
                    "type": "string"
                },
                "built_in": {
                    "type": "boolean"
                },
                "tokens": {
                    "type": "object"
                }
            }
        },
        "theme.Pair": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string",
                    "example": "colors-primary-500"
                },
                "value": {
                    "type": "string",
                    "example": "#3b82f6"
                }
            }
        },
        "preference.Choice": {
            "type": "object",
            "properties": {
                "preset_id": {
                    "type": "string",
                    "example": "modern"
                },
                "custom_overrides": {
                    "type": "object"
                },
                "dark_mode": {
                    "type": "boolean"
                }
            }
        },
        "themestore.Snapshot": {
            "type": "object",
            "properties": {
                "tenant": {
                    "type": "string",
                    "example": "acme"
                },
                "choice": {
                    "$ref": "#/definitions/preference.Choice"
                },
                "tokens": {
                    "type": "object"
                },
                "variables": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/theme.Pair"
                    }
                },
                "checksum": {
                    "type": "string",
                    "example": "9f1c2b7de04a5c31"
                },
                "durable": {
                    "type": "boolean"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "brandkit API",
	Description:      "Multi-tenant theme configuration: presets, per-tenant overrides, dark mode and live CSS variables.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
