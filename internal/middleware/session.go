package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuskit/attendance-backend/internal/response"
	"github.com/campuskit/attendance-backend/internal/service"
)

// CheckSingleDeviceSession validates the JWT's JTI against the active
// session in Redis. A mismatch means the session was reset or replaced and
// the token no longer grants access. Admin tokens are not session-tracked.
func CheckSingleDeviceSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		var err error
		switch claims.TokenType {
		case service.TokenTypeStudent:
			err = authService.ValidateStudentSession(c.Request.Context(), claims.UserID, claims.ID)
		case service.TokenTypeProfessor:
			err = authService.ValidateProfessorSession(c.Request.Context(), claims.UserID, claims.ID)
		default:
			c.Next()
			return
		}
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
