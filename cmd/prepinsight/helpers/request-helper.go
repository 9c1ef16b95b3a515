package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prepinsight/prepinsight/internal/sessions"
)

// Envelope is the response shape of every route:
// { success, data, message, errors }.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func respond(c *gin.Context, status int, data any, message string, errs []string) {
	if data == nil {
		data = gin.H{}
	}
	if errs == nil {
		errs = []string{}
	}
	c.JSON(status, Envelope{
		Success: status < 400,
		Data:    data,
		Message: message,
		Errors:  errs,
	})
}

// RespondOK writes a 200 envelope.
func RespondOK(c *gin.Context, data any, message string) {
	respond(c, http.StatusOK, data, message, nil)
}

// RespondCreated writes a 201 envelope.
func RespondCreated(c *gin.Context, data any, message string) {
	respond(c, http.StatusCreated, data, message, nil)
}

// HandleInvalidInputError logs a binding/validation failure and writes a
// 400 envelope carrying the validation message.
func HandleInvalidInputError(c *gin.Context, err error) {
	if c == nil {
		panic("HandleInvalidInputError: c is nil")
	}
	if err == nil {
		err = errors.New("unknown error")
	}

	zap.S().Infow(
		"Invalid input error",
		"route", c.FullPath(),
		"error", err.Error(),
	)

	respond(c, http.StatusBadRequest,
		nil,
		"You have provided a wrong input. Please check your parameters.",
		[]string{err.Error()})
}

// HandleNotFound writes a 404 envelope. Records not owned by the caller are
// indistinguishable from absent ones.
func HandleNotFound(c *gin.Context, what string) {
	if c == nil {
		panic("HandleNotFound: c is nil")
	}

	respond(c, http.StatusNotFound,
		nil,
		"The requested "+what+" was not found.",
		[]string{what + " not found"})
}

// HandleUnauthorized writes a 401 envelope.
func HandleUnauthorized(c *gin.Context) {
	if c == nil {
		panic("HandleUnauthorized: c is nil")
	}

	respond(c, http.StatusUnauthorized,
		nil,
		"Authentication required.",
		[]string{"missing or invalid session"})
}

// HandleInternalServerError logs the full error server-side and writes a
// 500 envelope with a generic message. Upstream AI failures land here too;
// their detail never reaches the client.
func HandleInternalServerError(c *gin.Context, err error) {
	if c == nil {
		panic("HandleInternalServerError: c is nil")
	}
	if err == nil {
		err = errors.New("unknown error")
	}

	zap.S().Errorw(
		"Internal server error",
		"route", c.FullPath(),
		"error", err.Error(),
	)

	respond(c, http.StatusInternalServerError,
		nil,
		"The server had an internal error.",
		[]string{"internal error"})
}

// UserID returns the authenticated user id set by the session middleware.
func UserID(c *gin.Context) string {
	return c.GetString(sessions.UserIDKey)
}
