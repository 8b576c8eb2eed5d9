// Package validation checks mutation payloads before they are sent.
//
// Struct tag validation uses go-playground/validator with JSON field names:
//
//	type NewUser struct {
//	    Email    string `json:"email" validate:"required,email"`
//	    FullName string `json:"fullName" validate:"required"`
//	}
//	err := validation.Validate(u)
//
// Programmatic checks collect errors the same way:
//
//	err := validation.New().Required("fullName", name).Min("limit", n, 0).Validate()
//
// Both report a single *httpclient.Error with code validation and status 0;
// Details["fields"] holds the per-field errors.
package validation
