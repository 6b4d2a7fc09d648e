package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarylite/internal/logging"
)

// --- Response Types ---

// DetailResponse is the body of every JSON error and of delete
// confirmations.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// --- Error Response Helpers ---

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, DetailResponse{Detail: resource + " not found"})
}

// respondUnprocessable sends a 422 response for request bodies or
// parameters that do not match the expected schema.
func respondUnprocessable(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, DetailResponse{Detail: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logging.FromContext(c.Request.Context()).Error().Err(err).Str("operation", context).Msg("Internal error")
	c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "internal server error"})
}

// --- Parameter Parsing ---

// idBitSize keeps parsed ids within the signed 64-bit range the stores use.
const idBitSize = 63

// parseID parses an unsigned integer id from URL parameters.
func parseID(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, idBitSize)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 422 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, ok := parseID(c, paramName)
	if !ok {
		respondUnprocessable(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}
