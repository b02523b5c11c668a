// Package docs registers the operator API document with swag so that
// echo-swagger can serve it under /swagger/.
package docs

import (
	"butler/internal/adapters/in/http/openapi"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds the document served by the Swagger UI.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "Butler robot operator API",
	Description:      "Places orders, adjusts the queue of a running delivery and cancels deliveries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(openapi.Spec),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
