package contract

import "errors"

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrEmptyResponse   = errors.New("model response is empty")
	ErrValidation      = errors.New("validation failed")
)
