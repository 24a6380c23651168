package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newPermDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Permission{}))
	return db
}

func permStatus(t *testing.T, db *gorm.DB, key string, userID uint, role string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("userId", userID)
	c.Set("role", role)

	hit := false
	RequirePermission(db, key)(c)
	if !c.IsAborted() {
		hit = true
	}
	if hit {
		return http.StatusOK
	}
	return w.Code
}

func TestRequirePermission_RoleDefault(t *testing.T) {
	db := newPermDB(t)
	require.NoError(t, db.Create(&entity.Permission{
		Key: entity.PermBookingsManage, Role: entity.RoleManager, Allowed: true,
	}).Error)

	assert.Equal(t, http.StatusOK, permStatus(t, db, entity.PermBookingsManage, 1, entity.RoleManager))
	assert.Equal(t, http.StatusForbidden, permStatus(t, db, entity.PermBookingsManage, 1, entity.RoleUser))
	assert.Equal(t, http.StatusForbidden, permStatus(t, db, entity.PermInvoicesManage, 1, entity.RoleManager))
}

func TestRequirePermission_OverrideBeatsDefault(t *testing.T) {
	db := newPermDB(t)
	require.NoError(t, db.Create(&entity.Permission{
		Key: entity.PermBookingsManage, Role: entity.RoleManager, Allowed: true,
	}).Error)

	// user 7 is explicitly denied despite the role default
	uid := uint(7)
	require.NoError(t, db.Create(&entity.Permission{
		Key: entity.PermBookingsManage, UserID: &uid, Allowed: false,
	}).Error)
	assert.Equal(t, http.StatusForbidden, permStatus(t, db, entity.PermBookingsManage, 7, entity.RoleManager))
	assert.Equal(t, http.StatusOK, permStatus(t, db, entity.PermBookingsManage, 8, entity.RoleManager))

	// and user 9 is granted a key their role never had
	uid2 := uint(9)
	require.NoError(t, db.Create(&entity.Permission{
		Key: entity.PermAuditView, UserID: &uid2, Allowed: true,
	}).Error)
	assert.Equal(t, http.StatusOK, permStatus(t, db, entity.PermAuditView, 9, entity.RoleManager))
}

func TestRequirePermission_SuperAdminBypass(t *testing.T) {
	db := newPermDB(t)
	assert.Equal(t, http.StatusOK, permStatus(t, db, entity.PermUsersManage, 1, entity.RoleSuperAdmin))
}
