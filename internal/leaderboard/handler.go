package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// LeaderboardResponse 是排行榜API的响应结构
type LeaderboardResponse struct {
	Entries    []RankedEntry `json:"entries"`
	CallerRank int           `json:"callerRank"`
}

// GetLeaderboardHandler 返回排行榜前若干名以及当前用户的名次。
// ?limit= 控制条数，默认20，上限100。
func GetLeaderboardHandler(c *gin.Context) {
	limit := int64(20)
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, callerRank, err := GetRankedUsers(limit, user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "排行榜暂不可用"})
		return
	}
	c.JSON(http.StatusOK, LeaderboardResponse{Entries: entries, CallerRank: callerRank})
}

// GetMyStatsHandler 返回当前用户自己的排行数据
func GetMyStatsHandler(c *gin.Context) {
	ownerUUID := user.CurrentUserID(c)
	stats, err := ComputeStatsFromCache(ownerUUID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "排行数据暂不可用"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
