package errors

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// AppError carries a stable code plus optional operator guidance. Printer
// names the sink involved when the failure happened during delivery.
type AppError struct {
	Code            Code
	Printer         string
	Message         string
	InternalDetails string
	IsUserFacing    bool
	SuggestedAction string
	WrappedError    error
	StackTrace      string
}

func (e *AppError) Error() string {
	if e.Printer != "" {
		if e.WrappedError != nil {
			return fmt.Sprintf("[%s] %s (printer %s): %v", e.Code, e.Message, e.Printer, e.WrappedError)
		}
		return fmt.Sprintf("[%s] %s (printer %s)", e.Code, e.Message, e.Printer)
	}
	if e.WrappedError != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.WrappedError)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.WrappedError
}

// Is lets errors.Is match two AppErrors by code, so callers can compare
// against the sentinels below without caring about message or stack.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	// ErrNotInitialized is returned when the global manager is requested before Init.
	ErrNotInitialized = &AppError{
		Code:            CodeNotInitialized,
		Message:         "log manager is not initialized",
		IsUserFacing:    true,
		SuggestedAction: "Call service.Init from the application's composition root before logging.",
	}
	// ErrAlreadyInitialized is returned by a second Init call.
	ErrAlreadyInitialized = &AppError{
		Code:            CodeAlreadyInitialized,
		Message:         "log manager is already initialized",
		IsUserFacing:    true,
		SuggestedAction: "Use service.Reinit to replace the global configuration explicitly.",
	}
)

func New(code Code, message string) *AppError {
	return &AppError{
		Code:         code,
		Message:      message,
		IsUserFacing: false,
		StackTrace:   string(debug.Stack()),
	}
}

// NewPrinterError reports a failure inside one printer. Unlike Wrap it always
// applies code, even when cause is already an AppError.
func NewPrinterError(code Code, printer string, message string, cause error) *AppError {
	return &AppError{
		Code:         code,
		Printer:      printer,
		Message:      message,
		WrappedError: cause,
		StackTrace:   string(debug.Stack()),
	}
}

func NewUserFacing(code Code, message string, suggestion string) *AppError {
	return &AppError{
		Code:            code,
		Message:         message,
		IsUserFacing:    true,
		SuggestedAction: suggestion,
		StackTrace:      string(debug.Stack()),
	}
}

func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		// Keep the innermost classification.
		return appErr
	}

	return &AppError{
		Code:         code,
		Message:      message,
		WrappedError: err,
		IsUserFacing: false,
		StackTrace:   string(debug.Stack()),
	}
}

func WrapUserFacing(err error, code Code, message string, suggestion string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:            code,
			Message:         message,
			InternalDetails: appErr.Error(),
			IsUserFacing:    true,
			SuggestedAction: suggestion,
			WrappedError:    err,
			StackTrace:      appErr.StackTrace,
		}
	}

	return &AppError{
		Code:            code,
		Message:         message,
		WrappedError:    err,
		IsUserFacing:    true,
		SuggestedAction: suggestion,
		StackTrace:      string(debug.Stack()),
	}
}

func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func GetUserFacingMessage(err error) (string, string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.IsUserFacing {
			return appErr.Message, appErr.SuggestedAction, true
		}
		nextErr := errors.Unwrap(appErr)
		for nextErr != nil {
			if errors.As(nextErr, &appErr) {
				if appErr.IsUserFacing {
					return appErr.Message, appErr.SuggestedAction, true
				}
				nextErr = errors.Unwrap(appErr)
			} else {
				break
			}
		}
	}
	return "An unexpected error occurred.", "Check logs for more details.", false
}
