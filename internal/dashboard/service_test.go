package dashboard

import (
	"testing"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/nutrition"
	"github.com/FitnessArc/fitness-arc-backend/internal/running"
	"github.com/FitnessArc/fitness-arc-backend/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int         { return &v }
func f64Ptr(v float64) *float64 { return &v }

func session(id uint, date time.Time, minutes int, logs ...workout.SetLog) workout.WorkoutSession {
	return workout.WorkoutSession{
		Model:           gorm.Model{ID: id},
		OwnerUUID:       "u1",
		Date:            date,
		DurationMinutes: minutes,
		IsCompleted:     true,
		SetLogs:         logs,
	}
}

func TestBuildDashboardEmptySnapshot(t *testing.T) {
	today := day(2026, 8, 10)
	data := BuildDashboard(&Snapshot{}, today, today)

	assert.Equal(t, NutritionTotals{}, data.TodayNutrition)
	assert.Equal(t, 0.0, data.TodayCaloriesBurned)
	assert.Equal(t, 0.0, data.CalorieBalance)
	assert.Equal(t, 0, data.Week.Sessions)
	assert.Equal(t, 0.0, data.Week.Volume)
	assert.Equal(t, 0, data.Week.Minutes)
	assert.Equal(t, 0, data.CurrentStreak)
	assert.Equal(t, 0, data.BestStreak)
	assert.Equal(t, 0.0, data.MonthlyConsistency)
	assert.Empty(t, data.RecentSessions)
	assert.Empty(t, data.BestPRs)
	assert.Equal(t, MonthToDate{}, data.MonthToDate)

	// 空数据下日历每一格的训练列表都必须是空的
	require.NotEmpty(t, data.CalendarWeeks)
	for _, week := range data.CalendarWeeks {
		require.Len(t, week, 7)
		for _, cell := range week {
			assert.Empty(t, cell.Sessions)
		}
	}
}

func TestBuildDashboardTodayNutrition(t *testing.T) {
	today := day(2026, 8, 10)
	snap := &Snapshot{
		TodayFoodLogs: []nutrition.FoodLog{
			{
				Food:  nutrition.Food{KcalPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatPer100g: 3.6},
				Grams: 150,
			},
			{
				Food:  nutrition.Food{KcalPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 22.8, FatPer100g: 0.3},
				Grams: 120,
			},
		},
	}
	data := BuildDashboard(snap, today, today)

	// 165*1.5 + 89*1.2 = 247.5 + 106.8
	assert.InDelta(t, 354.3, data.TodayNutrition.Kcal, 1e-9)
	// 31*1.5 + 1.1*1.2 = 46.5 + 1.32 → 47.8
	assert.InDelta(t, 47.8, data.TodayNutrition.Protein, 1e-9)
	// 22.8*1.2 = 27.36 → 27.4
	assert.InDelta(t, 27.4, data.TodayNutrition.Carbs, 1e-9)
	// 3.6*1.5 + 0.3*1.2 = 5.4 + 0.36 → 5.8
	assert.InDelta(t, 5.8, data.TodayNutrition.Fat, 1e-9)
	assert.InDelta(t, 354.3, data.CalorieBalance, 1e-9)
}

func TestBuildDashboardWeeklyTime(t *testing.T) {
	today := day(2026, 8, 10)
	snap := &Snapshot{
		RecentSessions: []workout.WorkoutSession{
			session(1, today, 30),
			session(2, today.AddDate(0, 0, -2), 45),
		},
	}
	data := BuildDashboard(snap, today, today)

	assert.Equal(t, 2, data.Week.Sessions)
	assert.Equal(t, 75, data.Week.Minutes)
	assert.Equal(t, 1, data.Week.Hours)
	assert.Equal(t, 15, data.Week.RemMinutes)
	assert.Equal(t, "1h15min", data.Week.Duration)
	assert.Equal(t, "0min", data.PrevWeek.Duration)
	// 75分钟 × 5 kcal/min
	assert.InDelta(t, 375.0, data.Week.CaloriesBurned, 1e-9)

	// 今天只有30分钟那次训练
	assert.InDelta(t, 150.0, data.TodayCaloriesBurned, 1e-9)
	assert.InDelta(t, -150.0, data.CalorieBalance, 1e-9)

	assert.Equal(t, 2, data.Deltas.Sessions)
	assert.Equal(t, 75, data.Deltas.Minutes)
}

func TestBuildDashboardPrevWeekWindow(t *testing.T) {
	today := day(2026, 8, 10)
	snap := &Snapshot{
		RecentSessions: []workout.WorkoutSession{
			session(1, today.AddDate(0, 0, -3), 60),  // 本周窗口
			session(2, today.AddDate(0, 0, -8), 40),  // 上周窗口
			session(3, today.AddDate(0, 0, -13), 20), // 上周窗口边界
			session(4, today.AddDate(0, 0, -14), 90), // 窗口之外
		},
	}
	data := BuildDashboard(snap, today, today)

	assert.Equal(t, 1, data.Week.Sessions)
	assert.Equal(t, 60, data.Week.Minutes)
	assert.Equal(t, 2, data.PrevWeek.Sessions)
	assert.Equal(t, 60, data.PrevWeek.Minutes)
	assert.Equal(t, -1, data.Deltas.Sessions)
	assert.Equal(t, 0, data.Deltas.Minutes)
}

func TestBuildDashboardStreaks(t *testing.T) {
	today := day(2026, 8, 10)

	t.Run("今天和昨天都有训练", func(t *testing.T) {
		snap := &Snapshot{
			YearSessionDates: []time.Time{
				today,
				today.AddDate(0, 0, -1),
				today.AddDate(0, 0, -3),
			},
		}
		data := BuildDashboard(snap, today, today)
		assert.Equal(t, 2, data.CurrentStreak)
		assert.Equal(t, 2, data.BestStreak)
	})

	t.Run("今天还没练不清零", func(t *testing.T) {
		snap := &Snapshot{
			YearSessionDates: []time.Time{
				today.AddDate(0, 0, -1),
				today.AddDate(0, 0, -2),
				today.AddDate(0, 0, -3),
			},
		}
		data := BuildDashboard(snap, today, today)
		assert.Equal(t, 3, data.CurrentStreak)
	})

	t.Run("夏令时切换不打断连续段", func(t *testing.T) {
		paris, err := time.LoadLocation("Europe/Paris")
		require.NoError(t, err)

		// 2026-03-29 巴黎进入夏令时，28日与29日的零点只差23小时
		localDay := func(d int) time.Time {
			return time.Date(2026, 3, d, 0, 0, 0, 0, paris)
		}
		snap := &Snapshot{
			YearSessionDates: []time.Time{localDay(28), localDay(29), localDay(30)},
		}
		data := BuildDashboard(snap, localDay(30), localDay(30))
		assert.Equal(t, 3, data.CurrentStreak)
		assert.Equal(t, 3, data.BestStreak)
	})

	t.Run("最佳连续段在历史中间", func(t *testing.T) {
		snap := &Snapshot{
			YearSessionDates: []time.Time{
				today,
				today.AddDate(0, 0, -10),
				today.AddDate(0, 0, -11),
				today.AddDate(0, 0, -12),
				today.AddDate(0, 0, -13),
			},
		}
		data := BuildDashboard(snap, today, today)
		assert.Equal(t, 1, data.CurrentStreak)
		assert.Equal(t, 4, data.BestStreak)
	})
}

func TestBuildDashboardMonthlyConsistency(t *testing.T) {
	// 8月10日，本月有3个训练日 → 3/10 = 30.0%
	today := day(2026, 8, 10)
	snap := &Snapshot{
		YearSessionDates: []time.Time{
			day(2026, 8, 1),
			day(2026, 8, 3),
			day(2026, 8, 5),
			day(2026, 7, 20), // 上个月，不计入
		},
	}
	data := BuildDashboard(snap, today, today)
	assert.InDelta(t, 30.0, data.MonthlyConsistency, 1e-9)
}

func TestBuildDashboardCalendar(t *testing.T) {
	today := day(2026, 8, 10)
	refDate := day(2026, 2, 1)
	snap := &Snapshot{
		CalendarSessions: []workout.WorkoutSession{
			session(7, day(2026, 2, 14), 45),
		},
	}
	data := BuildDashboard(snap, today, refDate)

	assert.Equal(t, 2026, data.CalendarYear)
	assert.Equal(t, 2, data.CalendarMonth)
	assert.Equal(t, MonthRef{Year: 2026, Month: 1}, data.PrevMonth)
	assert.Equal(t, MonthRef{Year: 2026, Month: 3}, data.NextMonth)

	// 2026年2月1日是周日：网格从周一1月26日开始，补齐到周日3月1日，共5周
	require.Len(t, data.CalendarWeeks, 5)
	for _, week := range data.CalendarWeeks {
		require.Len(t, week, 7)
	}
	first := data.CalendarWeeks[0][0]
	assert.Equal(t, "2026-01-26", first.Date)
	assert.False(t, first.InMonth)

	var found *CalendarDay
	for i := range data.CalendarWeeks {
		for j := range data.CalendarWeeks[i] {
			if data.CalendarWeeks[i][j].Date == "2026-02-14" {
				found = &data.CalendarWeeks[i][j]
			}
		}
	}
	require.NotNil(t, found)
	assert.True(t, found.InMonth)
	require.Len(t, found.Sessions, 1)
	assert.Equal(t, uint(7), found.Sessions[0].ID)
}

func TestBuildDashboardWeeklyChartsAcrossYearBoundary(t *testing.T) {
	today := day(2026, 1, 7)
	snap := &Snapshot{
		RecentSessions: []workout.WorkoutSession{
			session(1, day(2026, 1, 7), 30),   // 2026-W02
			session(2, day(2025, 12, 31), 30), // 2026-W01
			session(3, day(2025, 12, 28), 30), // 2025-W52（周日）
		},
	}
	data := BuildDashboard(snap, today, today)

	require.Len(t, data.Charts.SessionsPerWeek, 5)
	labels := make([]string, 0, 5)
	for _, p := range data.Charts.SessionsPerWeek {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"2025-W50", "2025-W51", "2025-W52", "2026-W01", "2026-W02"}, labels)

	assert.Equal(t, 0.0, data.Charts.SessionsPerWeek[0].Value)
	assert.Equal(t, 1.0, data.Charts.SessionsPerWeek[2].Value)
	assert.Equal(t, 1.0, data.Charts.SessionsPerWeek[3].Value)
	assert.Equal(t, 1.0, data.Charts.SessionsPerWeek[4].Value)
}

func TestBuildDashboardDailyCaloriesChart(t *testing.T) {
	today := day(2026, 8, 10)
	snap := &Snapshot{
		WeightKg: f64Ptr(75),
		RecentSessions: []workout.WorkoutSession{
			session(1, today.AddDate(0, 0, -1), 30), // 150 kcal
		},
		WeekFoodLogs: []nutrition.FoodLog{
			{
				Date:  today.AddDate(0, 0, -2),
				Food:  nutrition.Food{KcalPer100g: 200},
				Grams: 100,
			},
		},
		WeekRuns: []running.Run{
			{StartDate: today, CaloriesBurned: f64Ptr(300)},
			// 无记录热量：75kg × 10km × 1.036 = 777
			{StartDate: today.AddDate(0, 0, -2), DistanceM: 10000},
		},
		TodayRuns: []running.Run{
			{StartDate: today, CaloriesBurned: f64Ptr(300)},
		},
	}
	data := BuildDashboard(snap, today, today)

	require.Len(t, data.Charts.DailyCalories, 7)
	byDate := make(map[string]DayPoint)
	for _, p := range data.Charts.DailyCalories {
		byDate[p.Date] = p
	}
	assert.InDelta(t, 200.0, byDate["2026-08-08"].Consumed, 1e-9)
	assert.InDelta(t, 777.0, byDate["2026-08-08"].Burned, 1e-9)
	assert.InDelta(t, 150.0, byDate["2026-08-09"].Burned, 1e-9)
	assert.InDelta(t, 300.0, byDate["2026-08-10"].Burned, 1e-9)

	assert.InDelta(t, 300.0, data.TodayCaloriesBurned, 1e-9)
}

func TestBuildDashboardRecentSessionsAndMuscleVolume(t *testing.T) {
	today := day(2026, 8, 10)
	bench := workout.Exercise{Model: gorm.Model{ID: 1}, Name: "Développé couché", MuscleGroup: "chest"}
	squat := workout.Exercise{Model: gorm.Model{ID: 2}, Name: "Squat", MuscleGroup: "legs"}

	snap := &Snapshot{
		RecentSessions: []workout.WorkoutSession{
			session(1, today, 60,
				workout.SetLog{ExerciseID: 1, Exercise: bench, SetNumber: 1, Reps: intPtr(8), WeightKg: 80},
				workout.SetLog{ExerciseID: 1, Exercise: bench, SetNumber: 2, Reps: intPtr(6), WeightKg: 85},
				workout.SetLog{ExerciseID: 2, Exercise: squat, SetNumber: 1, Reps: intPtr(5), WeightKg: 120},
			),
			session(2, today.AddDate(0, 0, -35), 30), // 30天之外，不进列表
		},
		PRs: []workout.PR{
			{OwnerUUID: "u1", ExerciseID: 1, Exercise: bench, Metric: workout.MetricMaxWeight, Value: 85, Date: today},
			{OwnerUUID: "u1", ExerciseID: 2, Exercise: squat, Metric: workout.MetricMaxWeight, Value: 140, Date: today.AddDate(0, 0, -40)},
		},
	}
	data := BuildDashboard(snap, today, today)

	require.Len(t, data.RecentSessions, 1)
	recent := data.RecentSessions[0]
	// 80*8 + 85*6 + 120*5 = 640 + 510 + 600
	assert.InDelta(t, 1750.0, recent.TotalVolume, 1e-9)
	// 只有当天同动作的PR算这次训练创下的
	assert.Equal(t, 1, recent.PRCount)
	require.Len(t, recent.Exercises, 2)
	assert.Equal(t, "Développé couché", recent.Exercises[0].ExerciseName)
	assert.Equal(t, 2, recent.Exercises[0].Sets)
	assert.Equal(t, 14, recent.Exercises[0].TotalReps)
	assert.InDelta(t, 85.0, recent.Exercises[0].BestWeightKg, 1e-9)

	require.Len(t, data.Charts.VolumeByMuscle, 2)
	assert.Equal(t, "chest", data.Charts.VolumeByMuscle[0].MuscleGroup)
	assert.InDelta(t, 1150.0, data.Charts.VolumeByMuscle[0].Volume, 1e-9)
	assert.Equal(t, "legs", data.Charts.VolumeByMuscle[1].MuscleGroup)
	assert.InDelta(t, 600.0, data.Charts.VolumeByMuscle[1].Volume, 1e-9)

	require.Len(t, data.BestPRs, 2)
	assert.Equal(t, "Développé couché", data.BestPRs[0].ExerciseName)
	assert.Len(t, data.PRsByExercise["Squat"], 1)
}
