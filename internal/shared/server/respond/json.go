package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse wraps successful JSON payloads.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 {success:true,data} response.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, SuccessResponse{Success: true, Data: data})
}
