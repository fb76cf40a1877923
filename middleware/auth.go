package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-pms/services"
	"hotel-pms/utils"
)

const staffKey = "staff"

// Auth rejects requests without a valid "Bearer <jwt>" Authorization header
// and stores the staff claims on the context.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Printf("❌ AUTH ERROR (401): %v", err)
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(staffKey, claims)
		c.Next()
	}
}

// Staff returns the claims set by Auth, or nil on public routes.
func Staff(c *gin.Context) *services.StaffClaims {
	v, ok := c.Get(staffKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.StaffClaims)
	return claims
}

func StaffUsername(c *gin.Context) string {
	if claims := Staff(c); claims != nil {
		return claims.Username
	}
	return ""
}
