package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect/pkg/helpers"
	"github.com/devconnect/devconnect/pkg/response"
)

// CtxUserIDKey is the Gin context key carrying the authenticated user id.
const CtxUserIDKey = "userID"

// TokenHeader is the request header carrying the raw signed token.
const TokenHeader = "x-auth-token"

// Auth reads the bearer token from the x-auth-token header, verifies it
// statelessly (signature + expiry only) and injects the user id into the
// request context. The 401 bodies are part of the wire contract.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.AbortMsg(c, http.StatusUnauthorized, "No token auth denied")
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			response.AbortMsg(c, http.StatusUnauthorized, "Token is not valid")
			return
		}
		c.Set(CtxUserIDKey, claims.User.ID)
		c.Next()
	}
}
