package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"stocks-api/database"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var ErrUnauthorized = errors.New("unauthorized")

// ValidationError marks malformed or missing client input.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	return &ValidationError{Err: err}
}

func invalidf(msg string) error {
	return &ValidationError{Err: errors.New(msg)}
}

// respondError writes the status that matches err's category. Unexpected
// errors become 500 and are logged.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
	}
}

func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, invalidf("invalid " + name)
	}
	return uint(id), nil
}
