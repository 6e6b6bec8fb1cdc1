// Package validation checks configuration and request input and reports
// failures as INVALID_INPUT errors.
//
// Struct tag validation uses go-playground/validator:
//
//	type Server struct {
//	    Port int `validate:"gte=1,lte=65535"`
//	}
//	err := validation.Validate(cfg)
//
// Cross-field rules are collected programmatically:
//
//	v := validation.New()
//	v.Custom(cfg.Endpoint != "" || !cfg.Enabled, "endpoint", "is required when telemetry is enabled")
//	err := v.Validate()
package validation
