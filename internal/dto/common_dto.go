package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the uniform error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	UptimeSec int64  `json:"uptime_sec"`
}

var validate = validator.New()

// Validate runs struct tag validation and flattens the first failure
// into a plain error suitable for a 400 response.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		f := vErrs[0]
		return errors.New("invalid field: " + f.Field() + " (" + f.Tag() + ")")
	}
	return err
}
