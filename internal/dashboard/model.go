package dashboard

// NutritionTotals 是某一天的营养摄入汇总（保留一位小数）
type NutritionTotals struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// WeekStats 是一个7天窗口的训练汇总。
// Duration 是给前端直接展示的时长文本，例如 "1h15min"。
type WeekStats struct {
	Sessions       int     `json:"sessions"`
	Volume         float64 `json:"volume"`
	Minutes        int     `json:"minutes"`
	Hours          int     `json:"hours"`
	RemMinutes     int     `json:"remMinutes"`
	Duration       string  `json:"duration"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// WeekDeltas 是本周窗口相对上一周窗口的带符号变化量
type WeekDeltas struct {
	Sessions       int     `json:"sessions"`
	Volume         float64 `json:"volume"`
	Minutes        int     `json:"minutes"`
	CaloriesBurned float64 `json:"caloriesBurned"`
}

// ExerciseBreakdown 是一次训练中单个动作的组数汇总
type ExerciseBreakdown struct {
	ExerciseName string  `json:"exerciseName"`
	Sets         int     `json:"sets"`
	TotalReps    int     `json:"totalReps"`
	BestWeightKg float64 `json:"bestWeightKg"`
}

// RecentSession 是最近训练列表中的一项
type RecentSession struct {
	ID              uint                `json:"id"`
	Date            string              `json:"date"`
	DurationMinutes int                 `json:"durationMinutes"`
	TotalVolume     float64             `json:"totalVolume"`
	CaloriesBurned  float64             `json:"caloriesBurned"`
	PRCount         int                 `json:"prCount"`
	Exercises       []ExerciseBreakdown `json:"exercises"`
}

// CalendarSession 是日历格子里的一次训练
type CalendarSession struct {
	ID              uint `json:"id"`
	DurationMinutes int  `json:"durationMinutes"`
}

// CalendarDay 是日历网格中的一格。
// 网格补齐到整周（周一开始），所以InMonth区分目标月内外的日期。
type CalendarDay struct {
	Date     string            `json:"date"`
	Day      int               `json:"day"`
	InMonth  bool              `json:"inMonth"`
	IsToday  bool              `json:"isToday"`
	Sessions []CalendarSession `json:"sessions"`
}

// MonthRef 是日历上一月/下一月的导航标识
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthToDate 是本月至今的训练汇总
type MonthToDate struct {
	Sessions        int     `json:"sessions"`
	DurationMinutes int     `json:"durationMinutes"`
	Volume          float64 `json:"volume"`
	CaloriesBurned  float64 `json:"caloriesBurned"`
	PRCount         int     `json:"prCount"`
}

// PRItem 是某个动作、某个指标上的最佳纪录
type PRItem struct {
	ExerciseName string  `json:"exerciseName"`
	Metric       string  `json:"metric"`
	Value        float64 `json:"value"`
	Date         string  `json:"date"`
}

// WeekPoint 是按ISO周分桶的图表点，Label形如 "2026-W05"
type WeekPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DayPoint 是摄入/消耗对比图的一天
type DayPoint struct {
	Date     string  `json:"date"`
	Consumed float64 `json:"consumed"`
	Burned   float64 `json:"burned"`
}

// MusclePoint 是按肌群分组的训练量
type MusclePoint struct {
	MuscleGroup string  `json:"muscleGroup"`
	Volume      float64 `json:"volume"`
}

// Charts 汇集仪表盘的五个小图表序列
type Charts struct {
	SessionsPerWeek []WeekPoint   `json:"sessionsPerWeek"`
	VolumePerWeek   []WeekPoint   `json:"volumePerWeek"`
	DailyCalories   []DayPoint    `json:"dailyCalories"`
	TodayCarbsFat   []float64     `json:"todayCarbsFat"`
	VolumeByMuscle  []MusclePoint `json:"volumeByMuscle"`
}

// DashboardData 是仪表盘的完整读模型，一次请求一次构建
type DashboardData struct {
	TodayNutrition      NutritionTotals `json:"todayNutrition"`
	TodayCaloriesBurned float64         `json:"todayCaloriesBurned"`
	CalorieBalance      float64         `json:"calorieBalance"`

	Week     WeekStats  `json:"week"`
	PrevWeek WeekStats  `json:"prevWeek"`
	Deltas   WeekDeltas `json:"deltas"`

	RecentSessions []RecentSession `json:"recentSessions"`

	CalendarWeeks [][]CalendarDay `json:"calendarWeeks"`
	CalendarYear  int             `json:"calendarYear"`
	CalendarMonth int             `json:"calendarMonth"`
	PrevMonth     MonthRef        `json:"prevMonth"`
	NextMonth     MonthRef        `json:"nextMonth"`

	CurrentStreak      int     `json:"currentStreak"`
	BestStreak         int     `json:"bestStreak"`
	MonthlyConsistency float64 `json:"monthlyConsistency"`

	MonthToDate MonthToDate `json:"monthToDate"`

	BestPRs       []PRItem            `json:"bestPRs"`
	PRsByExercise map[string][]PRItem `json:"prsByExercise"`

	Charts Charts `json:"charts"`
}
