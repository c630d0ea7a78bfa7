// Package web defines common components for a web application.
package web

import (
	"github.com/go-playground/validator/v10"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// GetErrorMsg translates a validator field error into a human readable message.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return " field must be greater or equal to " + fe.Param()
	case "max":
		return " field must be less or equal to " + fe.Param()
	case "gt":
		return " field must be greater than " + fe.Param()
	case "email":
		return " field must contain a valid email"
	case "alphanum":
		return " field must contain only alphanumeric characters"
	case "currency":
		return " field must contain a supported currency"
	case "loanstatus":
		return " field must contain a valid loan status"
	}

	return " field is invalid"
}
