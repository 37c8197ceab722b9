package api

import (
	"errors"
	"net/http"

	"beast-hub/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindLimitExceeded:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"detail": ...}. Unclassified errors hide
// their message.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	detail := err.Error()
	if apperr.KindOf(err) == apperr.KindUnknown {
		detail = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// ProcessValidationErrors maps each failing field to the tag it failed.
func ProcessValidationErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, ve := range verrs {
		out[ve.Field()] = ve.Tag()
	}
	return out
}

// bindJSON decodes the body into dest and answers 422 on failure.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		body := gin.H{"detail": "invalid request body"}
		if fields := ProcessValidationErrors(err); fields != nil {
			body["errors"] = fields
		} else {
			body["detail"] = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, body)
		return false
	}
	return true
}
