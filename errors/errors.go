package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches application errors by code and message so that wrapped copies
// produced by Wrap still compare equal to the package-level values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause.
func Wrap(base *Error, err error) *Error {
	return &Error{Code: base.Code, Message: base.Message, Err: err}
}

// Common error types
var (
	ErrBadRequest   = New(http.StatusBadRequest, "Bad request", nil)
	ErrInternal     = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrUnauthorized = New(http.StatusUnauthorized, "Unauthorized", nil)
)

// Validation error types
var (
	ErrValidation       = New(http.StatusBadRequest, "Validation error", nil)
	ErrInvalidPromoCode = New(http.StatusBadRequest, "Invalid promo code", nil)
)

// Account error types
var (
	ErrDuplicateAccount   = New(http.StatusConflict, "Account already exists", nil)
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
)

// Storefront error types
var (
	ErrProductNotFound = New(http.StatusNotFound, "Product not found", nil)
	ErrEmptyCart       = New(http.StatusBadRequest, "Cart is empty", nil)
	ErrStore           = New(http.StatusInternalServerError, "Storage error", nil)
)

// As converts any error to an application error, falling back to an internal error.
func As(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternal, err)
}

// Respond writes err as a JSON body with its status code.
func Respond(c *gin.Context, err error) {
	appErr := As(err)
	body := gin.H{"error": appErr.Message}
	if appErr.Code < http.StatusInternalServerError && appErr.Err != nil {
		body["details"] = appErr.Err.Error()
	}
	c.JSON(appErr.Code, body)
}

// ErrorMiddleware renders the last error attached to the gin context.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			Respond(c, c.Errors.Last().Err)
			c.Abort()
		}
	}
}
