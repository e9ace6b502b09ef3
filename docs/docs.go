// Package docs registers the OpenAPI description of the catalog API with swag so that
// echo-swagger can serve it under /swagger.
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
		"/auth/register": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Register a customer account",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/RegisterInput"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/User"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/auth/login": {
			"post": {
				"tags": [
					"auth"
				],
				"summary": "Exchange credentials for an access token",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/LoginInput"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/TokenResponse"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/auth/me": {
			"get": {
				"tags": [
					"auth"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/categories": {
			"get": {
				"tags": [
					"categories"
				],
				"summary": "List active categories",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/Category"
							}
						}
					}
				}
			},
			"post": {
				"tags": [
					"categories"
				],
				"summary": "Create a category",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CategoryInput"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/Category"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/categories/{id}": {
			"put": {
				"tags": [
					"categories"
				],
				"summary": "Rename or reparent a category",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/CategoryInput"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Category"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"categories"
				],
				"summary": "Deactivate a category",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/products": {
			"get": {
				"tags": [
					"products"
				],
				"summary": "List available products",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/Product"
							}
						}
					}
				}
			},
			"post": {
				"tags": [
					"products"
				],
				"summary": "Create a product",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ProductInput"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/Product"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/products/detail/{slug}": {
			"get": {
				"tags": [
					"products"
				],
				"summary": "Get a product by slug",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "slug",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Product"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/products/{category_slug}": {
			"get": {
				"tags": [
					"products"
				],
				"summary": "List products in a category and its active children",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "category_slug",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/Product"
							}
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/products/{slug}": {
			"put": {
				"tags": [
					"products"
				],
				"summary": "Update a product",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "slug",
						"in": "path",
						"required": true
					},
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ProductInput"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Product"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"409": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"503": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"products"
				],
				"summary": "Deactivate a product",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "slug",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"503": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/products/{slug}/image": {
			"post": {
				"tags": [
					"products"
				],
				"summary": "Upload a product image",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "slug",
						"in": "path",
						"required": true
					},
					{
						"type": "file",
						"name": "image",
						"in": "formData",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/Product"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"413": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				},
				"consumes": [
					"multipart/form-data"
				]
			}
		},
		"/reviews": {
			"get": {
				"tags": [
					"reviews"
				],
				"summary": "List active reviews",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/ReviewView"
							}
						}
					}
				}
			},
			"post": {
				"tags": [
					"reviews"
				],
				"summary": "Add a review and recompute the product rating",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/ReviewInput"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/Review"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"503": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/reviews/product/{slug}": {
			"get": {
				"tags": [
					"reviews"
				],
				"summary": "List reviews of a product",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"name": "slug",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/ReviewView"
							}
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/reviews/{id}": {
			"delete": {
				"tags": [
					"reviews"
				],
				"summary": "Deactivate a review and recompute the product rating",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"503": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		},
		"/permission/{user_id}": {
			"patch": {
				"tags": [
					"users"
				],
				"summary": "Toggle a user between supplier and customer",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/User"
						}
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"users"
				],
				"summary": "Deactivate a non-admin user",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "integer",
						"name": "user_id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"401": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"403": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/Error"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"Category": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"parent_id": {
					"type": "integer"
				},
				"is_active": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"CategoryInput": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"parent_id": {
					"type": "integer"
				}
			},
			"required": [
				"name"
			]
		},
		"Product": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"name": {
					"type": "string"
				},
				"slug": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "integer"
				},
				"image_url": {
					"type": "string"
				},
				"stock": {
					"type": "integer"
				},
				"category_id": {
					"type": "integer"
				},
				"rating": {
					"type": "number"
				},
				"is_active": {
					"type": "boolean"
				},
				"supplier_id": {
					"type": "integer"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				},
				"updated_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"ProductInput": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"price": {
					"type": "integer"
				},
				"stock": {
					"type": "integer"
				},
				"category_id": {
					"type": "integer"
				}
			},
			"required": [
				"name",
				"category_id"
			]
		},
		"Review": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"comment": {
					"type": "string"
				},
				"comment_date": {
					"type": "string",
					"format": "date-time"
				},
				"user_id": {
					"type": "integer"
				},
				"product_id": {
					"type": "integer"
				},
				"rating_id": {
					"type": "integer"
				},
				"is_active": {
					"type": "boolean"
				}
			}
		},
		"ReviewView": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"comment": {
					"type": "string"
				},
				"comment_date": {
					"type": "string",
					"format": "date-time"
				},
				"user_id": {
					"type": "integer"
				},
				"product_id": {
					"type": "integer"
				},
				"rating_id": {
					"type": "integer"
				},
				"is_active": {
					"type": "boolean"
				},
				"grade": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				}
			}
		},
		"ReviewInput": {
			"type": "object",
			"properties": {
				"product_id": {
					"type": "integer"
				},
				"grade": {
					"type": "integer",
					"minimum": 1,
					"maximum": 5
				},
				"comment": {
					"type": "string"
				}
			},
			"required": [
				"product_id",
				"grade"
			]
		},
		"User": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer"
				},
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"is_admin": {
					"type": "boolean"
				},
				"is_supplier": {
					"type": "boolean"
				},
				"is_customer": {
					"type": "boolean"
				},
				"is_active": {
					"type": "boolean"
				},
				"created_at": {
					"type": "string",
					"format": "date-time"
				}
			}
		},
		"RegisterInput": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"first_name": {
					"type": "string"
				},
				"last_name": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"username",
				"email",
				"password"
			]
		},
		"LoginInput": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"username",
				"password"
			]
		},
		"TokenResponse": {
			"type": "object",
			"properties": {
				"access_token": {
					"type": "string"
				},
				"token_type": {
					"type": "string"
				},
				"expires_in": {
					"type": "integer"
				}
			}
		},
		"Error": {
			"type": "object",
			"properties": {
				"error": {
					"type": "object",
					"properties": {
						"code": {
							"type": "string"
						},
						"message": {
							"type": "string"
						},
						"details": {
							"type": "object",
							"additionalProperties": {
								"type": "string"
							}
						}
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds the exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Catalog API",
	Description:      "Hierarchical product catalog with reviews and ratings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
