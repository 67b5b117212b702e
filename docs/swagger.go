package docs

import "github.com/swaggo/swag"

// @title           Service Board API
// @version         1.0
// @description     API for customer-facing service boards tracking one engagement between a business and a customer

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a board access token

// @tag.name Boards
// @tag.description Board metadata and lifecycle

// @tag.name Access
// @tag.description Password gate verification

// @tag.name Actions
// @tag.description Board timeline actions

// @tag.name Appointments
// @tag.description Appointment scheduling

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
