package middleware

import (
	"net/http"
	"strings"

	"langconnect/internal/infrastructure/security"

	"github.com/gin-gonic/gin"
)

// Auth валидирует bearer-токен, если он передан, и кладёт userId в контекст.
// Запросы без заголовка проходят дальше: контракт клиента не требует
// авторизации на чтениях.
func Auth(tokens *security.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		userID, err := tokens.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}
