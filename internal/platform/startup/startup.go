package startup

import (
	"fmt"

	"github.com/FitnessArc/fitness-arc-backend/internal/leaderboard"
	"github.com/FitnessArc/fitness-arc-backend/internal/nutrition"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/metadata"
	"github.com/FitnessArc/fitness-arc-backend/internal/running"
	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/FitnessArc/fitness-arc-backend/internal/workout"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if err := user.PrimeCachedDB(); err != nil {
		return err
	}
	if err := workout.PrimeCachedDB(); err != nil {
		return err
	}
	if err := nutrition.PrimeCachedDB(); err != nil {
		return err
	}
	if err := running.PrimeCachedDB(); err != nil {
		return err
	}

	// 种子数据只导入一次，由metadata中的标记保证
	if err := seedIfNeeded(); err != nil {
		return err
	}

	// 排行榜依赖前面所有表，最后预热
	if err := leaderboard.PrimeCachedDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// seedIfNeeded 在首次启动时导入动作库与食物库的种子数据
func seedIfNeeded() error {
	seeded, err := metadata.IsSeeded(database.DB)
	if err != nil {
		return fmt.Errorf("无法读取种子数据标记: %w", err)
	}
	if seeded {
		return nil
	}

	if err := workout.SeedExercises(); err != nil {
		return err
	}
	if err := nutrition.SeedFoods(); err != nil {
		return err
	}
	if err := metadata.MarkSeeded(database.DB); err != nil {
		return fmt.Errorf("无法写入种子数据标记: %w", err)
	}
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数。
// Redis重启后所有缓存数据丢失，从SQLite完整重建。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := user.WarmupCache(); err != nil {
		return err
	}
	if err := leaderboard.RebuildAll(); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
