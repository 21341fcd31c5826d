package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Failures are either {"msg": "..."} or, for input validation,
// {"errors": [{"msg": "..."}, ...]}. Clients depend on these exact shapes.

// ErrorItem is a single validation failure message.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// Msg writes a {"msg": ...} body with the given status.
func Msg(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}

// AbortMsg writes a {"msg": ...} body and aborts the handler chain.
func AbortMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"msg": msg})
}

// Errors writes an {"errors": [...]} body with the given status.
func Errors(c *gin.Context, status int, items []ErrorItem) {
	c.JSON(status, gin.H{"errors": items})
}

// ErrorsMsg is a convenience for a single-message errors list.
func ErrorsMsg(c *gin.Context, status int, msg string) {
	Errors(c, status, []ErrorItem{{Msg: msg}})
}

// ServerError writes the generic 500 body.
func ServerError(c *gin.Context) {
	Msg(c, http.StatusInternalServerError, "Server Error")
}
