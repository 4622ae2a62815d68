package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	crm "github.com/smdydx/bidua-crm"
)

// respondError translates the storage error taxonomy into HTTP statuses:
// validation 400, not found 404, integrity 409, storage and anything
// unrecognized 500. Cause chains never reach the response body.
func respondError(c *gin.Context, err error) {
	var apiErr *crm.Error
	if !errors.As(err, &apiErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"detail":  "an unexpected error occurred",
			"success": false,
		})
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	switch apiErr.Type {
	case crm.ErrorTypeValidation:
		status = http.StatusBadRequest
		message = "Validation failed"
	case crm.ErrorTypeNotFound:
		status = http.StatusNotFound
		message = "Record not found"
	case crm.ErrorTypeIntegrity:
		status = http.StatusConflict
		message = "Conflict with existing data"
	}

	detail := apiErr.Message
	if apiErr.Field != "" {
		detail = fmt.Sprintf("field '%s': %s", apiErr.Field, apiErr.Message)
	}
	c.JSON(status, gin.H{"error": message, "detail": detail, "success": false})
}

func respondBadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request",
		"detail":  detail,
		"success": false,
	})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   message,
		"detail":  message,
		"success": false,
	})
}

func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, gin.H{
		"error":   message,
		"detail":  message,
		"success": false,
	})
}

func respondDeleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message, "success": true})
}

// idParam parses the :id route segment. It writes a 400 response and
// returns false when the segment is not a positive integer.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, fmt.Sprintf("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// pageRequest binds page/size query parameters and clamps them to the
// allowed window.
func pageRequest(c *gin.Context) crm.PageRequest {
	var page crm.PageRequest
	_ = c.ShouldBindQuery(&page)
	return page.Normalize()
}

// stringFilter copies a non-empty query parameter into the filter set.
func stringFilter(c *gin.Context, filters crm.Filters, key string) {
	if v := c.Query(key); v != "" {
		filters[key] = v
	}
}

// boolFilter parses a boolean query parameter. Unparseable values are
// ignored rather than rejected so stray input never breaks a listing.
func boolFilter(c *gin.Context, filters crm.Filters, key string) {
	v := c.Query(key)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		filters[key] = b
	}
}

// intFilter parses an integer query parameter, typically a foreign key.
func intFilter(c *gin.Context, filters crm.Filters, key string) {
	v := c.Query(key)
	if v == "" {
		return
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		filters[key] = n
	}
}
