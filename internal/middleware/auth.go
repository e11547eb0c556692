package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/snaplink/snaplink/pkg/response"
)

const ownerIDKey = "ownerID"

// Auth verifies the caller's JWT and stores the owner id on the
// request context. Tokens are read from the Authorization header or,
// as a fallback, the accessToken cookie set by the identity provider.
func Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie("accessToken"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		ownerID, err := uuid.Parse(claims.Subject)
		if err != nil {
			response.Unauthorized(c, "Invalid token subject")
			c.Abort()
			return
		}

		c.Set(ownerIDKey, ownerID)
		c.Next()
	}
}

// OwnerID returns the authenticated owner id set by Auth.
func OwnerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ownerIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
