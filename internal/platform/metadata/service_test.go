package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Metadata{}))
	return db
}

func TestLeaderboardRefreshCheckpoint(t *testing.T) {
	db := openTestDB(t)

	// 从未刷新过时返回零值时间，不报错
	got, err := GetLeaderboardLastRefresh(db)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	first := time.Date(2026, 8, 10, 12, 30, 0, 0, time.UTC)
	require.NoError(t, SetLeaderboardLastRefresh(db, first))
	got, err = GetLeaderboardLastRefresh(db)
	require.NoError(t, err)
	assert.True(t, got.Equal(first))

	// 重复写入走upsert，只保留一行
	second := first.Add(30 * time.Minute)
	require.NoError(t, SetLeaderboardLastRefresh(db, second))
	got, err = GetLeaderboardLastRefresh(db)
	require.NoError(t, err)
	assert.True(t, got.Equal(second))

	var count int64
	require.NoError(t, db.Model(&Metadata{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeededFlag(t *testing.T) {
	db := openTestDB(t)

	seeded, err := IsSeeded(db)
	require.NoError(t, err)
	assert.False(t, seeded)

	require.NoError(t, MarkSeeded(db))
	seeded, err = IsSeeded(db)
	require.NoError(t, err)
	assert.True(t, seeded)
}
