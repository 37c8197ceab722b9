package api

import (
	"strconv"

	"beast-hub/internal/apperr"

	"github.com/gin-gonic/gin"
)

// queryInt reads an integer query parameter, falling back when absent.
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("%s must be an integer", name)
	}
	return v, nil
}

// requiredQueryInt reads an integer query parameter that must be present.
func requiredQueryInt(c *gin.Context, name string) (int, error) {
	if _, ok := c.GetQuery(name); !ok {
		return 0, apperr.Validation("%s is required", name)
	}
	return queryInt(c, name, 0)
}

// pathInt reads an integer path parameter.
func pathInt(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apperr.Validation("%s must be an integer", name)
	}
	return v, nil
}
