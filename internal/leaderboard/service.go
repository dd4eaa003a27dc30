package leaderboard

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/FitnessArc/fitness-arc-backend/internal/workout"
	"github.com/FitnessArc/fitness-arc-backend/pkg/timex"
	"github.com/redis/go-redis/v9"
)

// ComputeStats 从SQLite为一个用户计算排行数据（近30天训练与历史PR）
func ComputeStats(ownerUUID string, today time.Time) (*Stats, error) {
	cutoff := timex.Day(today).AddDate(0, 0, -(StatsWindowDay - 1))

	var sessions []workout.WorkoutSession
	err := database.DB.Preload("SetLogs").
		Where("owner_uuid = ? AND is_completed = ? AND date >= ?", ownerUUID, true, cutoff).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询近30天训练: %w", err)
	}

	var volume float64
	for i := range sessions {
		volume += sessions[i].TotalVolume()
	}

	var prCount int64
	err = database.DB.Model(&workout.PR{}).
		Where("owner_uuid = ?", ownerUUID).
		Count(&prCount).Error
	if err != nil {
		return nil, fmt.Errorf("无法统计PR数量: %w", err)
	}

	stats := &Stats{
		OwnerUUID:  ownerUUID,
		Sessions30: len(sessions),
		Volume30:   math.Round(volume*10) / 10,
		PRCount:    int(prCount),
	}
	stats.XP = ComputeXP(stats.Sessions30, stats.Volume30, stats.PRCount)
	stats.Level = LevelFor(stats.XP)
	stats.League = LeagueFor(stats.Level)
	return stats, nil
}

// writeStatsPipe 把一个用户的统计数据写入pipeline（Hash + ZSet各一条）
func writeStatsPipe(pipe redis.Pipeliner, stats *Stats) {
	pipe.HSet(database.Ctx, StatsKey(stats.OwnerUUID), map[string]interface{}{
		"sessions30": stats.Sessions30,
		"volume30":   stats.Volume30,
		"prCount":    stats.PRCount,
		"xp":         stats.XP,
		"level":      stats.Level,
		"league":     stats.League,
	})
	pipe.ZAdd(database.Ctx, RankingKey, redis.Z{Score: stats.XP, Member: stats.OwnerUUID})
}

// RefreshUserEntry 重新计算并写入单个用户的排行数据。
// 注册为workout的变化回调，训练完成或删除后立即生效。
func RefreshUserEntry(ownerUUID string) error {
	if !database.IsRedisHealthy() {
		return nil
	}
	stats, err := ComputeStats(ownerUUID, time.Now())
	if err != nil {
		return err
	}

	pipe := database.RDB.Pipeline()
	writeStatsPipe(pipe, stats)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法写入用户排行数据: %w", err)
	}
	return nil
}

// RebuildAll 从SQLite重建整个排行榜缓存。
// 启动预热和Redis重启恢复都走这条路径。
func RebuildAll() error {
	var users []user.User
	if err := database.DB.Select("uuid").Find(&users).Error; err != nil {
		return fmt.Errorf("无法读取用户列表: %w", err)
	}

	today := time.Now()
	pipe := database.RDB.Pipeline()
	// 先清空旧榜，避免残留已删除的用户
	pipe.Del(database.Ctx, RankingKey)
	for i := range users {
		stats, err := ComputeStats(users[i].UUID, today)
		if err != nil {
			return err
		}
		writeStatsPipe(pipe, stats)
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("重建排行榜缓存失败: %w", err)
	}

	fmt.Printf("排行榜缓存重建完成，共 %d 个用户。\n", len(users))
	return nil
}

// ComputeStatsFromCache 优先从Redis读取一个用户的排行数据，缓存缺失时回源计算并写入
func ComputeStatsFromCache(ownerUUID string) (*Stats, error) {
	if database.IsRedisHealthy() {
		fields, err := database.RDB.HGetAll(database.Ctx, StatsKey(ownerUUID)).Result()
		if err == nil && len(fields) > 0 {
			stats := &Stats{OwnerUUID: ownerUUID}
			stats.Sessions30, _ = strconv.Atoi(fields["sessions30"])
			stats.Volume30, _ = strconv.ParseFloat(fields["volume30"], 64)
			stats.PRCount, _ = strconv.Atoi(fields["prCount"])
			stats.XP, _ = strconv.ParseFloat(fields["xp"], 64)
			stats.Level, _ = strconv.Atoi(fields["level"])
			stats.League = fields["league"]
			return stats, nil
		}
	}

	stats, err := ComputeStats(ownerUUID, time.Now())
	if err != nil {
		return nil, err
	}
	if database.IsRedisHealthy() {
		pipe := database.RDB.Pipeline()
		writeStatsPipe(pipe, stats)
		if _, err := pipe.Exec(database.Ctx); err != nil {
			fmt.Printf("回填用户 %s 的排行缓存失败: %v\n", ownerUUID, err)
		}
	}
	return stats, nil
}

// GetRankedUsers 返回前limit名的排行数据，以及调用者自己的名次（0表示未上榜）
func GetRankedUsers(limit int64, callerUUID string) ([]RankedEntry, int, error) {
	members, err := database.RDB.ZRevRangeWithScores(database.Ctx, RankingKey, 0, limit-1).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("无法读取排行榜: %w", err)
	}

	// 用pipeline一次取回所有上榜用户的统计Hash
	pipe := database.RDB.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(members))
	for i, m := range members {
		cmds[i] = pipe.HGetAll(database.Ctx, StatsKey(m.Member.(string)))
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return nil, 0, fmt.Errorf("无法读取排行统计数据: %w", err)
	}

	entries := make([]RankedEntry, 0, len(members))
	for i, m := range members {
		fields := cmds[i].Val()
		entry := RankedEntry{Rank: i + 1}
		entry.OwnerUUID = m.Member.(string)
		entry.XP = m.Score
		entry.Sessions30, _ = strconv.Atoi(fields["sessions30"])
		entry.Volume30, _ = strconv.ParseFloat(fields["volume30"], 64)
		entry.PRCount, _ = strconv.Atoi(fields["prCount"])
		entry.Level, _ = strconv.Atoi(fields["level"])
		entry.League = fields["league"]
		if entry.League == "" {
			entry.Level = LevelFor(entry.XP)
			entry.League = LeagueFor(entry.Level)
		}
		entries = append(entries, entry)
	}

	callerRank := 0
	if callerUUID != "" {
		if rank, err := database.RDB.ZRevRank(database.Ctx, RankingKey, callerUUID).Result(); err == nil {
			callerRank = int(rank) + 1
		}
	}
	return entries, callerRank, nil
}
