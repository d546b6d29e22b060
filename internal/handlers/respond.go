package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"task-manager/internal/middleware"
	"task-manager/internal/policy"
	"task-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps typed service outcomes to HTTP statuses in one
// place. Unexpected failures are logged server-side and surface as a
// generic 500; detail is only attached in debug mode.
func writeServiceError(c *gin.Context, err error) {
	if ve, ok := service.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}
	if errors.Is(err, service.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden."})
		return
	}

	log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	body := gin.H{"error": "An unexpected error occurred."}
	if gin.IsDebugging() {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// requirePrincipal fetches the principal set by the auth middleware. The
// middleware guards every protected route, so a miss means a wiring bug;
// it still answers 401 rather than panicking.
func requirePrincipal(c *gin.Context) (policy.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
	}
	return p, ok
}

// idParam parses a numeric path parameter; a malformed id is a 400.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: " + raw})
		return 0, false
	}
	return uint(id), true
}
