// backend/src/security/validation/request_validator.go
package validation

import (
	"github.com/go-playground/validator/v10"
)

// Request validates incoming request payloads against the `validate` tags
// on the wire models.
var Request *validator.Validate

func init() {
	Request = validator.New(validator.WithRequiredStructEnabled())
}
