package leaderboard

import (
	"testing"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.RDB = nil })
}

func TestGetRankedUsers(t *testing.T) {
	setupTestRedis(t)

	pipe := database.RDB.Pipeline()
	writeStatsPipe(pipe, &Stats{OwnerUUID: "user-a", Sessions30: 8, Volume30: 2000, PRCount: 0, XP: 100, Level: 2, League: LeagueSilver})
	writeStatsPipe(pipe, &Stats{OwnerUUID: "user-b", Sessions30: 20, Volume30: 4000, PRCount: 2, XP: 250, Level: 5, League: LeagueGold})
	writeStatsPipe(pipe, &Stats{OwnerUUID: "user-c", Sessions30: 5, Volume30: 0, PRCount: 0, XP: 50, Level: 1, League: LeagueBronze})
	_, err := pipe.Exec(database.Ctx)
	require.NoError(t, err)

	entries, callerRank, err := GetRankedUsers(2, "user-c")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "user-b", entries[0].OwnerUUID)
	assert.InDelta(t, 250.0, entries[0].XP, 1e-9)
	assert.Equal(t, LeagueGold, entries[0].League)
	assert.Equal(t, 20, entries[0].Sessions30)
	assert.InDelta(t, 4000.0, entries[0].Volume30, 1e-9)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "user-a", entries[1].OwnerUUID)

	// user-c排第三，没进前两名但有名次
	assert.Equal(t, 3, callerRank)
}

func TestGetRankedUsersEmptyBoard(t *testing.T) {
	setupTestRedis(t)

	entries, callerRank, err := GetRankedUsers(20, "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0, callerRank)
}

func TestRefreshUserEntrySkipsWhenRedisUnhealthy(t *testing.T) {
	setupTestRedis(t)
	database.UpdateStatus(false, "")
	t.Cleanup(func() { database.UpdateStatus(true, "test") })

	// Redis不健康时静默跳过，SQLite仍是事实来源
	assert.NoError(t, RefreshUserEntry("user-a"))
}
