package leaderboard

import (
	"fmt"

	"github.com/FitnessArc/fitness-arc-backend/internal/workout"
)

// PrimeCachedDB 是leaderboard模块的初始化总入口。
// 排行榜没有自己的表，只有Redis缓存：预热全榜并挂上workout的变化回调。
func PrimeCachedDB() error {
	if err := RebuildAll(); err != nil {
		return fmt.Errorf("无法预热排行榜缓存: %w", err)
	}

	// 训练完成或删除后立即刷新该用户的排行数据
	workout.RegisterSessionChangeListener(func(ownerUUID string) {
		if err := RefreshUserEntry(ownerUUID); err != nil {
			fmt.Printf("刷新用户 %s 的排行数据失败: %v\n", ownerUUID, err)
		}
	})

	return nil
}
