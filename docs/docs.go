// Package docs holds the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.BasePath}}"
        }
    ],
    "paths": {
        "/reports/ledger": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportLedger",
                "summary": "Get ledger report",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "start_date",
                        "in": "query",
                        "required": false,
                        "description": "Start date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "end_date",
                        "in": "query",
                        "required": false,
                        "description": "End date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "customization",
                        "in": "query",
                        "required": false,
                        "description": "Which leg to keep",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "INCOME_ONLY",
                                "EXPENSE_ONLY",
                                "BOTH"
                            ]
                        }
                    },
                    {
                        "name": "include_transactions",
                        "in": "query",
                        "required": false,
                        "description": "List each head's transactions",
                        "schema": {
                            "type": "boolean"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/cash-book": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportCashBook",
                "summary": "Get cash book",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "bank",
                        "in": "query",
                        "required": true,
                        "description": "Bank name or All",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "start_date",
                        "in": "query",
                        "required": false,
                        "description": "Start date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "end_date",
                        "in": "query",
                        "required": false,
                        "description": "End date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "customization",
                        "in": "query",
                        "required": false,
                        "description": "Which leg to keep",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "INCOME_ONLY",
                                "EXPENSE_ONLY",
                                "BOTH"
                            ]
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/notice-board": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportNoticeBoard",
                "summary": "Get notice board",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "head",
                        "in": "query",
                        "required": true,
                        "description": "Transaction head name",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "start_date",
                        "in": "query",
                        "required": false,
                        "description": "Start date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "end_date",
                        "in": "query",
                        "required": false,
                        "description": "End date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "customization",
                        "in": "query",
                        "required": false,
                        "description": "Which leg to keep",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "INCOME_ONLY",
                                "EXPENSE_ONLY",
                                "BOTH"
                            ]
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/aramana": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportAramana",
                "summary": "Get Aramana report",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "start_date",
                        "in": "query",
                        "required": false,
                        "description": "Start date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "end_date",
                        "in": "query",
                        "required": false,
                        "description": "End date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "customization",
                        "in": "query",
                        "required": false,
                        "description": "Which leg to keep",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "INCOME_ONLY",
                                "EXPENSE_ONLY",
                                "BOTH"
                            ]
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/family-dues": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportFamilyDues",
                "summary": "Get family dues statement",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "family_id",
                        "in": "query",
                        "required": true,
                        "description": "Family ID",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "start_date",
                        "in": "query",
                        "required": false,
                        "description": "Start date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "end_date",
                        "in": "query",
                        "required": false,
                        "description": "End date (YYYY-MM-DD)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "customization",
                        "in": "query",
                        "required": false,
                        "description": "Which leg to keep",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "INCOME_ONLY",
                                "EXPENSE_ONLY",
                                "BOTH"
                            ]
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/pivot": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportPivot",
                "summary": "Get fiscal year pivot",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "fiscal_year",
                        "in": "query",
                        "required": true,
                        "description": "Fiscal year start, 2023 for 2023-24",
                        "schema": {
                            "type": "integer"
                        }
                    },
                    {
                        "name": "type",
                        "in": "query",
                        "required": false,
                        "description": "Transaction type",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "INCOME",
                                "EXPENSE"
                            ],
                            "default": "INCOME"
                        }
                    },
                    {
                        "name": "top_n",
                        "in": "query",
                        "required": false,
                        "description": "Keep the N largest heads",
                        "schema": {
                            "type": "integer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/pivot/head-trend": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportHeadTrend",
                "summary": "Get head trend",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "head_id",
                        "in": "query",
                        "required": true,
                        "description": "Transaction head ID",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "type",
                        "in": "query",
                        "required": false,
                        "description": "Transaction type",
                        "schema": {
                            "type": "string",
                            "enum": [
                                "INCOME",
                                "EXPENSE"
                            ],
                            "default": "INCOME"
                        }
                    },
                    {
                        "name": "from_year",
                        "in": "query",
                        "required": true,
                        "description": "First fiscal year",
                        "schema": {
                            "type": "integer"
                        }
                    },
                    {
                        "name": "to_year",
                        "in": "query",
                        "required": true,
                        "description": "Last fiscal year",
                        "schema": {
                            "type": "integer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/pivot/income-expense": {
            "get": {
                "tags": [
                    "reports"
                ],
                "operationId": "getReportIncomeExpense",
                "summary": "Get income against expense",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "from_year",
                        "in": "query",
                        "required": true,
                        "description": "First fiscal year",
                        "schema": {
                            "type": "integer"
                        }
                    },
                    {
                        "name": "to_year",
                        "in": "query",
                        "required": true,
                        "description": "Last fiscal year",
                        "schema": {
                            "type": "integer"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/Response"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/reports/cache/invalidate": {
            "post": {
                "tags": [
                    "reports"
                ],
                "operationId": "invalidateReportCache",
                "summary": "Invalidate cached reports",
                "parameters": [
                    {
                        "name": "parish_id",
                        "in": "query",
                        "required": true,
                        "description": "Parish ID (or the X-Parish-ID header)",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/CacheInvalidationResponse"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/ErrorResponse"
                                }
                            }
                        }
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {
                        "type": "string",
                        "example": "ERR_VALIDATION"
                    },
                    "message": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "details": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/ValidationDetail"
                        }
                    }
                }
            },
            "ValidationDetail": {
                "type": "object",
                "properties": {
                    "field": {
                        "type": "string"
                    },
                    "message": {
                        "type": "string"
                    }
                }
            },
            "Response": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean"
                    },
                    "data": {
                        "type": "object"
                    },
                    "error": {
                        "$ref": "#/components/schemas/ErrorInfo"
                    }
                }
            },
            "CacheInvalidationResponse": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean",
                        "example": true
                    },
                    "data": {
                        "type": "object",
                        "properties": {
                            "parish_id": {
                                "type": "string",
                                "format": "uuid"
                            },
                            "invalidated": {
                                "type": "boolean"
                            }
                        }
                    }
                }
            },
            "ErrorResponse": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean",
                        "example": false
                    },
                    "error": {
                        "$ref": "#/components/schemas/ErrorInfo"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Title:            "Parish Report API",
	Description:      "Financial reports over the parish ledger",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
