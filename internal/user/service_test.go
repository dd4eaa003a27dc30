package user

import (
	"testing"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	database.DB = db
	t.Cleanup(func() { database.DB = nil })
	return db
}

func TestActivateUserWhenRedisUnavailable(t *testing.T) {
	db := setupTestDB(t)
	database.UpdateStatus(false, "")
	t.Cleanup(func() { database.UpdateStatus(true, "") })

	id, err := CreateProvisionalUser()
	require.NoError(t, err)

	// Redis不可用时缓存写入被跳过，SQLite写入照常成功
	require.NoError(t, ActivateUser(id))

	var u User
	require.NoError(t, db.Where("uuid = ?", id).First(&u).Error)
	assert.Equal(t, GoalMaintain, u.Goal)
	assert.Equal(t, RunningSourceManual, u.RunningDataSource)

	// 重复激活是幂等的
	require.NoError(t, ActivateUser(id))

	var count int64
	require.NoError(t, db.Model(&User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestActivateUserRejectsInvalidUUID(t *testing.T) {
	setupTestDB(t)
	database.UpdateStatus(false, "")
	t.Cleanup(func() { database.UpdateStatus(true, "") })

	assert.Error(t, ActivateUser("not-a-uuid"))
}
