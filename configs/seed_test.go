package configs

import (
	"testing"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededDB(t *testing.T) {
	t.Helper()
	ConnectionDB(":memory:")
	SetupDatabase()
	require.NoError(t, SeedLookups())
}

func defaultCount(key, role string) int64 {
	var cnt int64
	DB().Model(&entity.Permission{}).
		Where("key = ? AND role = ? AND user_id IS NULL AND allowed = ?", key, role, true).
		Count(&cnt)
	return cnt
}

func TestSeedLookups_PermissionDefaults(t *testing.T) {
	seededDB(t)

	// manager runs the rental workflow
	assert.Equal(t, int64(1), defaultCount(entity.PermBookingsManage, entity.RoleManager))
	assert.Equal(t, int64(1), defaultCount(entity.PermInvoicesManage, entity.RoleManager))
	assert.Equal(t, int64(1), defaultCount(entity.PermVehiclesManage, entity.RoleManager))

	// admin additionally manages users and the audit trail
	assert.Equal(t, int64(1), defaultCount(entity.PermUsersManage, entity.RoleAdmin))
	assert.Equal(t, int64(1), defaultCount(entity.PermAuditView, entity.RoleAdmin))

	// no defaults for plain users, and no blank rows ever
	assert.Equal(t, int64(0), defaultCount(entity.PermBookingsManage, entity.RoleUser))
	var blank int64
	DB().Model(&entity.Permission{}).Where("key = '' OR role = ''").Count(&blank)
	assert.Equal(t, int64(0), blank)
}

func TestSeedLookups_Idempotent(t *testing.T) {
	seededDB(t)

	var before int64
	DB().Model(&entity.Permission{}).Count(&before)

	require.NoError(t, SeedLookups())

	var after int64
	DB().Model(&entity.Permission{}).Count(&after)
	assert.Equal(t, before, after)

	var statuses int64
	DB().Model(&entity.BookingStatus{}).Count(&statuses)
	assert.Equal(t, int64(8), statuses)
}
