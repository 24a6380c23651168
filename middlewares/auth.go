package middlewares

import (
	"net/http"
	"strings"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthMiddleware validates the bearer token, rejects suspended/banned
// accounts and, when minRole is non-empty, enforces a minimum role rank.
func AuthMiddleware(db *gorm.DB, secret string, minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		var user entity.User
		if err := db.Select("id, role, status").First(&user, claims.UserID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unknown user"})
			return
		}
		if user.Status != entity.UserActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "account " + strings.ToLower(user.Status)})
			return
		}

		// role may have changed since the token was issued; trust the DB
		c.Set("userId", user.ID)
		c.Set("role", user.Role)

		if minRole != "" && entity.RoleRank(user.Role) < entity.RoleRank(minRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			return
		}

		c.Next()
	}
}
