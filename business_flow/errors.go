// Package businessflow contains the use cases of the pricing middleware
package businessflow

import (
	"errors"
	"fmt"

	"github.com/jasado/jasado-middleware/app/services"
)

// Business flow error constants
var (
	// Pricing errors
	ErrPricingSettingsNotFound = errors.New("pricing settings not found")
	ErrInvalidCompetitorRule   = errors.New("invalid competitor rule")
	ErrInvalidMinimumMargin    = errors.New("minimum margin must be between 0 and 100")
	ErrInvalidUndercutValue    = errors.New("undercut value must not be negative")

	// Product errors
	ErrProductNotFound = errors.New("product not found")

	// Export errors
	ErrInvalidChannel = errors.New("invalid export channel")

	// Admin errors
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAdminInactive     = errors.New("admin is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsPricingSettingsNotFound(err error) bool {
	return errors.Is(err, ErrPricingSettingsNotFound)
}

func IsRunInProgress(err error) bool {
	return errors.Is(err, services.ErrRunInProgress)
}

func IsProductNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

func IsInvalidChannel(err error) bool {
	return errors.Is(err, ErrInvalidChannel)
}

func IsAdminNotFound(err error) bool {
	return errors.Is(err, ErrAdminNotFound)
}

func IsAdminInactive(err error) bool {
	return errors.Is(err, ErrAdminInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}
