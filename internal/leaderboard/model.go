package leaderboard

// 段位名称与升段所需等级
const (
	LeagueBronze   = "Bronze"
	LeagueSilver   = "Silver"
	LeagueGold     = "Gold"
	LeaguePlatinum = "Platinum"
	LeagueDiamond  = "Diamond"
	LeagueMaster   = "Master"
)

// XP计算参数：近30天训练数×10 + 近30天训练量/100 + 历史PR数×5
const (
	XPPerSession   = 10.0
	VolumeDivisor  = 100.0
	XPPerPR        = 5.0
	XPPerLevel     = 50.0
	StatsWindowDay = 30
)

// Stats 是一个用户参与排行的全部数据
type Stats struct {
	OwnerUUID  string  `json:"ownerUuid"`
	Sessions30 int     `json:"sessions30"`
	Volume30   float64 `json:"volume30"`
	PRCount    int     `json:"prCount"`
	XP         float64 `json:"xp"`
	Level      int     `json:"level"`
	League     string  `json:"league"`
}

// RankedEntry 是排行榜上的一行
type RankedEntry struct {
	Rank int `json:"rank"`
	Stats
}

// LevelFor 由XP得出等级
func LevelFor(xp float64) int {
	if xp <= 0 {
		return 0
	}
	return int(xp / XPPerLevel)
}

// LeagueFor 由等级得出段位
func LeagueFor(level int) string {
	switch {
	case level >= 20:
		return LeagueMaster
	case level >= 15:
		return LeagueDiamond
	case level >= 10:
		return LeaguePlatinum
	case level >= 5:
		return LeagueGold
	case level >= 2:
		return LeagueSilver
	default:
		return LeagueBronze
	}
}

// ComputeXP 由原始统计数据计算XP
func ComputeXP(sessions30 int, volume30 float64, prCount int) float64 {
	return float64(sessions30)*XPPerSession + volume30/VolumeDivisor + float64(prCount)*XPPerPR
}
