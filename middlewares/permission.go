package middlewares

import (
	"net/http"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
	"github.com/shanmdahanayaka/vehicle-rental-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequirePermission resolves a permission key for the authenticated user:
// a user-specific Permission row wins, otherwise the role default applies.
// SUPER_ADMIN bypasses the table entirely. Must run after AuthMiddleware.
func RequirePermission(db *gorm.DB, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := utils.CurrentUserID(c)
		role := utils.CurrentRole(c)

		if role == entity.RoleSuperAdmin {
			c.Next()
			return
		}

		var override entity.Permission
		err := db.Where("key = ? AND user_id = ?", key, uid).First(&override).Error
		if err == nil {
			if !override.Allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
				return
			}
			c.Next()
			return
		}

		var cnt int64
		db.Model(&entity.Permission{}).
			Where("key = ? AND role = ? AND user_id IS NULL AND allowed = ?", key, role, true).
			Count(&cnt)
		if cnt == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			return
		}
		c.Next()
	}
}
