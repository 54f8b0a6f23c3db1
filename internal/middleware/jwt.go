package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret and TokenTTL are overridden from config at startup.
var (
	JWTSecret = []byte("buddyremind-dev-secret")
	TokenTTL  = 7 * 24 * time.Hour
)

// IssueToken signs a session token for a user.
func IssueToken(userID int, email string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   userID,
		"email": email,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	}).SignedString(JWTSecret)
}

// JWTAuth guards a route group with bearer-token auth and stores the caller
// identity on the context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "not authorized to access this route",
			})
			return
		}
		token, err := jwt.Parse(auth[7:], func(t *jwt.Token) (interface{}, error) {
			return JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "not authorized to access this route",
			})
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		c.Set("user_id", int(claims["uid"].(float64)))
		if email, ok := claims["email"].(string); ok {
			c.Set("user_email", email)
		}

		// Renew tokens that are within a day of expiry.
		if exp, ok := claims["exp"].(float64); ok {
			if time.Until(time.Unix(int64(exp), 0)) < 24*time.Hour {
				if newToken, err := IssueToken(c.GetInt("user_id"), c.GetString("user_email")); err == nil {
					c.Header("X-New-Token", newToken)
				}
			}
		}

		c.Next()
	}
}
