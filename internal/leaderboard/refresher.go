package leaderboard

import (
	"fmt"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/metadata"
	"github.com/FitnessArc/fitness-arc-backend/pkg/lifecycle"
)

// StartPeriodicRefresher 启动一个后台Goroutine，周期性地全量重建排行榜。
// 单用户刷新依赖workout的变化回调，这里兜底处理30天窗口随时间滑动的问题。
func StartPeriodicRefresher(handle *lifecycle.Handle, interval time.Duration) {
	// 打印上一次刷新的落库时间，方便判断停机期间榜单落后了多久
	if last, err := metadata.GetLeaderboardLastRefresh(database.DB); err == nil && !last.IsZero() {
		fmt.Printf("上一次排行榜全量刷新完成于 %s。\n", last.Format(time.RFC3339))
	}

	go func() {
		defer handle.Close()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fmt.Printf("排行榜刷新服务已启动，间隔 %v。\n", interval)
		for {
			select {
			case <-ticker.C:
				refreshOnce()
			case <-handle.Done():
				fmt.Println("排行榜刷新服务已停止。")
				return
			}
		}
	}()
}

func refreshOnce() {
	if !database.IsRedisHealthy() {
		fmt.Println("排行榜刷新: Redis不可用，跳过本轮。")
		return
	}
	if err := RebuildAll(); err != nil {
		fmt.Printf("排行榜刷新失败: %v\n", err)
		return
	}
	// 刷新时间落库，重启后可判断榜单的新鲜程度
	if err := metadata.SetLeaderboardLastRefresh(database.DB, time.Now()); err != nil {
		fmt.Printf("无法记录排行榜刷新时间: %v\n", err)
	}
}
