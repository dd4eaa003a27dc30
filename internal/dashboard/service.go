package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/running"
	"github.com/FitnessArc/fitness-arc-backend/internal/workout"
	"github.com/FitnessArc/fitness-arc-backend/pkg/timex"
	"github.com/jinzhu/now"
)

const dayLayout = "2006-01-02"

// 日历一律以周一为一周的开始
var calendarCfg = &now.Config{WeekStartDay: time.Monday}

// CalendarRange 返回refDate所在月补齐整周后的显示范围 [start, end]（都是当天零点）
func CalendarRange(refDate time.Time) (time.Time, time.Time) {
	ref := calendarCfg.With(timex.Day(refDate))
	start := calendarCfg.With(ref.BeginningOfMonth()).BeginningOfWeek()
	end := calendarCfg.With(ref.EndOfMonth()).EndOfWeek()
	return timex.Day(start), timex.Day(end)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// runCalories 返回一次跑步的热量，没有记录值时按体重估算（默认70kg）
func runCalories(r *running.Run, weightKg *float64) float64 {
	if r.CaloriesBurned != nil {
		return r.Calories()
	}
	weight := running.DefaultWeightKg
	if weightKg != nil {
		weight = *weightKg
	}
	return r.EstimateCalories(weight)
}

// BuildDashboard 由快照构建完整的仪表盘读模型。
// 纯函数：today和refDate都显式传入，不读墙上时钟，便于测试。
// today决定日/周/连续天数统计，refDate只决定日历显示哪个月。
func BuildDashboard(snap *Snapshot, today, refDate time.Time) *DashboardData {
	today = timex.Day(today)
	refDate = timex.Day(refDate)
	data := &DashboardData{}

	// --- 今日营养与热量平衡 ---
	var kcal, protein, carbs, fat float64
	for i := range snap.TodayFoodLogs {
		l := &snap.TodayFoodLogs[i]
		kcal += l.Kcal()
		protein += l.Protein()
		carbs += l.Carbs()
		fat += l.Fat()
	}
	data.TodayNutrition = NutritionTotals{
		Kcal:    round1(kcal),
		Protein: round1(protein),
		Carbs:   round1(carbs),
		Fat:     round1(fat),
	}

	var burnedToday float64
	for i := range snap.RecentSessions {
		s := &snap.RecentSessions[i]
		if timex.SameDay(s.Date, today) {
			burnedToday += s.EstimatedCaloriesBurned()
		}
	}
	for i := range snap.TodayRuns {
		burnedToday += runCalories(&snap.TodayRuns[i], snap.WeightKg)
	}
	data.TodayCaloriesBurned = round1(burnedToday)
	data.CalorieBalance = round1(kcal - burnedToday)

	// --- 7天双窗口与变化量 ---
	weekStart := today.AddDate(0, 0, -6)
	prevStart := today.AddDate(0, 0, -13)
	data.Week = sumWindow(snap.RecentSessions, weekStart, today)
	data.PrevWeek = sumWindow(snap.RecentSessions, prevStart, weekStart.AddDate(0, 0, -1))
	data.Deltas = WeekDeltas{
		Sessions:       data.Week.Sessions - data.PrevWeek.Sessions,
		Volume:         round1(data.Week.Volume - data.PrevWeek.Volume),
		Minutes:        data.Week.Minutes - data.PrevWeek.Minutes,
		CaloriesBurned: round1(data.Week.CaloriesBurned - data.PrevWeek.CaloriesBurned),
	}

	// --- 最近训练（30天内最多10次） ---
	data.RecentSessions = buildRecentSessions(snap, today)

	// --- 日历 ---
	buildCalendar(data, snap.CalendarSessions, today, refDate)

	// --- 连续天数与本月坚持率 ---
	activeDays := make(map[string]bool, len(snap.YearSessionDates))
	for _, d := range snap.YearSessionDates {
		activeDays[timex.Day(d).Format(dayLayout)] = true
	}
	data.CurrentStreak = currentStreak(activeDays, today)
	data.BestStreak = bestStreak(snap.YearSessionDates)

	monthStart := calendarCfg.With(today).BeginningOfMonth()
	activeThisMonth := 0
	for _, d := range snap.YearSessionDates {
		if !timex.Day(d).Before(timex.Day(monthStart)) {
			activeThisMonth++
		}
	}
	data.MonthlyConsistency = round1(float64(activeThisMonth) / float64(today.Day()) * 100)

	// --- 本月至今 ---
	data.MonthToDate = buildMonthToDate(snap, timex.Day(monthStart), today)

	// --- 最佳PR ---
	data.BestPRs, data.PRsByExercise = reducePRs(snap.PRs)

	// --- 图表序列 ---
	data.Charts = buildCharts(snap, today, carbs, fat)

	return data
}

// sumWindow 汇总 [from, to]（含两端）内已完成训练的各项指标
func sumWindow(sessions []workout.WorkoutSession, from, to time.Time) WeekStats {
	stats := WeekStats{}
	for i := range sessions {
		s := &sessions[i]
		d := timex.Day(s.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		stats.Sessions++
		stats.Volume += s.TotalVolume()
		stats.Minutes += s.DurationMinutes
		stats.CaloriesBurned += s.EstimatedCaloriesBurned()
	}
	stats.Volume = round1(stats.Volume)
	stats.CaloriesBurned = round1(stats.CaloriesBurned)
	stats.Hours, stats.RemMinutes = timex.SplitMinutes(stats.Minutes)
	stats.Duration = timex.FormatMinutes(stats.Minutes)
	return stats
}

func buildRecentSessions(snap *Snapshot, today time.Time) []RecentSession {
	cutoff := today.AddDate(0, 0, -29)
	result := make([]RecentSession, 0, 10)
	for i := range snap.RecentSessions {
		if len(result) >= 10 {
			break
		}
		s := &snap.RecentSessions[i]
		if timex.Day(s.Date).Before(cutoff) {
			continue
		}

		// 这次训练涉及的动作
		exerciseIDs := make(map[uint]bool)
		for j := range s.SetLogs {
			exerciseIDs[s.SetLogs[j].ExerciseID] = true
		}

		// 当天同动作的PR记作这次训练创下的纪录
		prCount := 0
		for j := range snap.PRs {
			pr := &snap.PRs[j]
			if timex.SameDay(pr.Date, s.Date) && exerciseIDs[pr.ExerciseID] {
				prCount++
			}
		}

		result = append(result, RecentSession{
			ID:              s.ID,
			Date:            timex.Day(s.Date).Format(dayLayout),
			DurationMinutes: s.DurationMinutes,
			TotalVolume:     round1(s.TotalVolume()),
			CaloriesBurned:  round1(s.EstimatedCaloriesBurned()),
			PRCount:         prCount,
			Exercises:       breakdownByExercise(s.SetLogs),
		})
	}
	return result
}

// breakdownByExercise 把一次训练的组记录按动作汇总，保持首次出现的顺序
func breakdownByExercise(logs []workout.SetLog) []ExerciseBreakdown {
	order := make([]string, 0)
	byName := make(map[string]*ExerciseBreakdown)
	for i := range logs {
		l := &logs[i]
		name := l.Exercise.Name
		entry, ok := byName[name]
		if !ok {
			entry = &ExerciseBreakdown{ExerciseName: name}
			byName[name] = entry
			order = append(order, name)
		}
		entry.Sets++
		if l.Reps != nil {
			entry.TotalReps += *l.Reps
		}
		if l.WeightKg > entry.BestWeightKg {
			entry.BestWeightKg = l.WeightKg
		}
	}
	result := make([]ExerciseBreakdown, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	return result
}

func buildCalendar(data *DashboardData, sessions []workout.WorkoutSession, today, refDate time.Time) {
	byDay := make(map[string][]CalendarSession)
	for i := range sessions {
		s := &sessions[i]
		key := timex.Day(s.Date).Format(dayLayout)
		byDay[key] = append(byDay[key], CalendarSession{ID: s.ID, DurationMinutes: s.DurationMinutes})
	}

	start, end := CalendarRange(refDate)
	data.CalendarYear = refDate.Year()
	data.CalendarMonth = int(refDate.Month())

	var week []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		cell := CalendarDay{
			Date:     key,
			Day:      d.Day(),
			InMonth:  d.Month() == refDate.Month() && d.Year() == refDate.Year(),
			IsToday:  timex.SameDay(d, today),
			Sessions: byDay[key],
		}
		if cell.Sessions == nil {
			cell.Sessions = []CalendarSession{}
		}
		week = append(week, cell)
		if len(week) == 7 {
			data.CalendarWeeks = append(data.CalendarWeeks, week)
			week = nil
		}
	}

	prev := refDate.AddDate(0, 0, -refDate.Day())
	next := timex.Day(calendarCfg.With(refDate).EndOfMonth()).AddDate(0, 0, 1)
	data.PrevMonth = MonthRef{Year: prev.Year(), Month: int(prev.Month())}
	data.NextMonth = MonthRef{Year: next.Year(), Month: int(next.Month())}
}

// currentStreak 从今天起逐日回溯。今天还没练不清零，从昨天开始数。
func currentStreak(activeDays map[string]bool, today time.Time) int {
	d := today
	if !activeDays[d.Format(dayLayout)] {
		d = d.AddDate(0, 0, -1)
	}
	streak := 0
	for activeDays[d.Format(dayLayout)] {
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

// bestStreak 在近一年的不重复训练日期中找最长连续段
func bestStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		days = append(days, timex.Day(d))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1]) {
			continue
		}
		// 按日历日比较而不是按间隔时长：夏令时切换日的两个零点相差23或25小时
		if timex.Day(days[i-1].AddDate(0, 0, 1)).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func buildMonthToDate(snap *Snapshot, monthStart, today time.Time) MonthToDate {
	mtd := MonthToDate{}
	for i := range snap.RecentSessions {
		s := &snap.RecentSessions[i]
		d := timex.Day(s.Date)
		if d.Before(monthStart) || d.After(today) {
			continue
		}
		mtd.Sessions++
		mtd.DurationMinutes += s.DurationMinutes
		mtd.Volume += s.TotalVolume()
		mtd.CaloriesBurned += s.EstimatedCaloriesBurned()
	}
	mtd.Volume = round1(mtd.Volume)
	mtd.CaloriesBurned = round1(mtd.CaloriesBurned)
	for i := range snap.PRs {
		if !timex.Day(snap.PRs[i].Date).Before(monthStart) {
			mtd.PRCount++
		}
	}
	return mtd
}

// reducePRs 按 (动作, 指标) 做显式的取最大值归并，不依赖任何查询排序
func reducePRs(prs []workout.PR) ([]PRItem, map[string][]PRItem) {
	type key struct {
		name   string
		metric string
	}
	best := make(map[key]PRItem)
	for i := range prs {
		pr := &prs[i]
		k := key{name: pr.Exercise.Name, metric: pr.Metric}
		if existing, ok := best[k]; !ok || pr.Value > existing.Value {
			best[k] = PRItem{
				ExerciseName: pr.Exercise.Name,
				Metric:       pr.Metric,
				Value:        pr.Value,
				Date:         timex.Day(pr.Date).Format(dayLayout),
			}
		}
	}

	flat := make([]PRItem, 0, len(best))
	for _, item := range best {
		flat = append(flat, item)
	}
	sort.Slice(flat, func(i, j int) bool {
		if flat[i].ExerciseName != flat[j].ExerciseName {
			return flat[i].ExerciseName < flat[j].ExerciseName
		}
		return flat[i].Metric < flat[j].Metric
	})

	grouped := make(map[string][]PRItem)
	for _, item := range flat {
		grouped[item.ExerciseName] = append(grouped[item.ExerciseName], item)
	}
	return flat, grouped
}

func buildCharts(snap *Snapshot, today time.Time, todayCarbs, todayFat float64) Charts {
	charts := Charts{
		TodayCarbsFat: []float64{round1(todayCarbs), round1(todayFat)},
	}

	// 近5个ISO周，按 (ISO年, ISO周) 分桶避免跨年歧义
	weeks := timex.LastNWeeks(today, 5)
	sessionsByWeek := make(map[timex.WeekKey]float64)
	volumeByWeek := make(map[timex.WeekKey]float64)
	for i := range snap.RecentSessions {
		s := &snap.RecentSessions[i]
		wk := timex.WeekKeyOf(s.Date)
		sessionsByWeek[wk]++
		volumeByWeek[wk] += s.TotalVolume()
	}
	for _, wk := range weeks {
		charts.SessionsPerWeek = append(charts.SessionsPerWeek, WeekPoint{Label: wk.Label(), Value: sessionsByWeek[wk]})
		charts.VolumePerWeek = append(charts.VolumePerWeek, WeekPoint{Label: wk.Label(), Value: round1(volumeByWeek[wk])})
	}

	// 近7天摄入/消耗对比
	consumed := make(map[string]float64)
	for i := range snap.WeekFoodLogs {
		l := &snap.WeekFoodLogs[i]
		consumed[timex.Day(l.Date).Format(dayLayout)] += l.Kcal()
	}
	burned := make(map[string]float64)
	for i := range snap.RecentSessions {
		s := &snap.RecentSessions[i]
		burned[timex.Day(s.Date).Format(dayLayout)] += s.EstimatedCaloriesBurned()
	}
	for i := range snap.WeekRuns {
		r := &snap.WeekRuns[i]
		burned[timex.Day(r.StartDate).Format(dayLayout)] += runCalories(r, snap.WeightKg)
	}
	for offset := -6; offset <= 0; offset++ {
		key := today.AddDate(0, 0, offset).Format(dayLayout)
		charts.DailyCalories = append(charts.DailyCalories, DayPoint{
			Date:     key,
			Consumed: round1(consumed[key]),
			Burned:   round1(burned[key]),
		})
	}

	// 近30天按肌群分组的训练量
	cutoff := today.AddDate(0, 0, -29)
	byMuscle := make(map[string]float64)
	for i := range snap.RecentSessions {
		s := &snap.RecentSessions[i]
		if timex.Day(s.Date).Before(cutoff) {
			continue
		}
		for j := range s.SetLogs {
			l := &s.SetLogs[j]
			group := l.Exercise.MuscleGroup
			if group == "" {
				group = "other"
			}
			byMuscle[group] += l.Volume()
		}
	}
	for group, volume := range byMuscle {
		charts.VolumeByMuscle = append(charts.VolumeByMuscle, MusclePoint{MuscleGroup: group, Volume: round1(volume)})
	}
	sort.Slice(charts.VolumeByMuscle, func(i, j int) bool {
		return charts.VolumeByMuscle[i].Volume > charts.VolumeByMuscle[j].Volume
	})

	return charts
}

// GetDashboard 取数据并构建仪表盘，是handler使用的入口
func GetDashboard(ownerUUID string, today, refDate time.Time) (*DashboardData, error) {
	snap, err := LoadSnapshot(ownerUUID, today, refDate)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(snap, today, refDate), nil
}
