package dashboard

import (
	"fmt"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/nutrition"
	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/running"
	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/FitnessArc/fitness-arc-backend/internal/workout"
	"github.com/FitnessArc/fitness-arc-backend/pkg/timex"
)

// recentWindowDays 要覆盖7天双窗口、最近30天列表、近5个ISO周和本月至今，
// 取42天足够容纳所有这些窗口。
const recentWindowDays = 42

// Snapshot 是构建仪表盘所需的全部原始数据。
// 按固定顺序一次性查出，之后的聚合是纯内存计算。
type Snapshot struct {
	WeightKg *float64

	TodayFoodLogs []nutrition.FoodLog
	TodayRuns     []running.Run

	// RecentSessions 是近42天内已完成的训练（含组记录和动作）
	RecentSessions []workout.WorkoutSession

	// CalendarSessions 是日历显示范围（补齐整周后）内已完成的训练
	CalendarSessions []workout.WorkoutSession

	// YearSessionDates 是近一年内有已完成训练的所有不重复日期
	YearSessionDates []time.Time

	PRs []workout.PR

	// WeekFoodLogs / WeekRuns 供近7天摄入/消耗对比图使用
	WeekFoodLogs []nutrition.FoodLog
	WeekRuns     []running.Run
}

// LoadSnapshot 按固定查询序列取出一个用户的仪表盘原始数据。
// today用于日/周统计，refDate只决定日历显示哪个月。
func LoadSnapshot(ownerUUID string, today, refDate time.Time) (*Snapshot, error) {
	snap := &Snapshot{}

	// 1. 用户体重（档案或体重缺失时降级为未知，不报错也不触发写入）
	if weight, ok := user.GetWeightKg(ownerUUID); ok {
		snap.WeightKg = &weight
	}

	todayStart := timex.Day(today)
	tomorrow := todayStart.AddDate(0, 0, 1)

	// 2. 今天的饮食记录
	err := database.DB.Preload("Food").
		Where("owner_uuid = ? AND date >= ? AND date < ?", ownerUUID, todayStart, tomorrow).
		Find(&snap.TodayFoodLogs).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询今日饮食记录: %w", err)
	}

	// 3. 今天的跑步记录
	err = database.DB.
		Where("owner_uuid = ? AND start_date >= ? AND start_date < ?", ownerUUID, todayStart, tomorrow).
		Find(&snap.TodayRuns).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询今日跑步记录: %w", err)
	}

	// 4. 近42天内已完成的训练
	recentStart := todayStart.AddDate(0, 0, -(recentWindowDays - 1))
	err = database.DB.Preload("SetLogs.Exercise").
		Where("owner_uuid = ? AND is_completed = ? AND date >= ? AND date < ?", ownerUUID, true, recentStart, tomorrow).
		Order("date desc").
		Find(&snap.RecentSessions).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询近期训练: %w", err)
	}

	// 5. 日历范围内已完成的训练（refDate所在月补齐整周）
	calStart, calEnd := CalendarRange(refDate)
	err = database.DB.
		Where("owner_uuid = ? AND is_completed = ? AND date >= ? AND date < ?", ownerUUID, true, calStart, calEnd.AddDate(0, 0, 1)).
		Order("date asc").
		Find(&snap.CalendarSessions).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询日历训练: %w", err)
	}

	// 6. 近一年内有训练的不重复日期（供最佳连续天数计算）
	yearStart := todayStart.AddDate(-1, 0, 0)
	err = database.DB.Model(&workout.WorkoutSession{}).
		Where("owner_uuid = ? AND is_completed = ? AND date >= ? AND date < ?", ownerUUID, true, yearStart, tomorrow).
		Distinct("date").
		Order("date asc").
		Pluck("date", &snap.YearSessionDates).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询训练日期: %w", err)
	}

	// 7. 全部PR
	err = database.DB.Preload("Exercise").
		Where("owner_uuid = ?", ownerUUID).
		Find(&snap.PRs).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询PR: %w", err)
	}

	// 8. 近7天的饮食与跑步记录
	weekStart := todayStart.AddDate(0, 0, -6)
	err = database.DB.Preload("Food").
		Where("owner_uuid = ? AND date >= ? AND date < ?", ownerUUID, weekStart, tomorrow).
		Find(&snap.WeekFoodLogs).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询近7天饮食记录: %w", err)
	}
	err = database.DB.
		Where("owner_uuid = ? AND start_date >= ? AND start_date < ?", ownerUUID, weekStart, tomorrow).
		Find(&snap.WeekRuns).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询近7天跑步记录: %w", err)
	}

	return snap, nil
}
