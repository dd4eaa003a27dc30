package leaderboard

import "fmt"

// Redis键名
const (
	// RankingKey 是总排行榜的Sorted Set，member=用户UUID，score=XP
	RankingKey = "leaderboard:ranking"

	// statsKeyPrefix 是每个用户统计数据Hash的键前缀
	statsKeyPrefix = "leaderboard:stats:"
)

// StatsKey 返回某个用户统计数据Hash的键名
func StatsKey(ownerUUID string) string {
	return fmt.Sprintf("%s%s", statsKeyPrefix, ownerUUID)
}
