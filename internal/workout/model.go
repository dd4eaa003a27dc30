package workout

import (
	"time"

	"gorm.io/gorm"
)

// KcalPerMinute 是估算训练消耗时使用的固定常数（每分钟5千卡）。
// 刻意不考虑强度和体重，与历史数据保持行为兼容。
const KcalPerMinute = 5.0

// PR的metric取值
const (
	MetricMaxWeight = "max_weight"
	MetricMaxReps   = "max_reps"
)

// Exercise 定义了动作库中的一个动作
type Exercise struct {
	gorm.Model

	// Name 是动作名称，例如 "Développé couché"
	Name string `gorm:"uniqueIndex;not null"`

	// Slug 是动作的URL友好标识
	Slug string `gorm:"uniqueIndex;not null"`

	// MuscleGroup 是动作的主要目标肌群: chest/back/legs/shoulders/arms/core/fullbody/cardio/technique
	MuscleGroup string `gorm:"index;type:varchar(20)"`

	// Equipment 是所需器械: barbell/dumbbell/machine/cable/bodyweight/none...
	Equipment string `gorm:"type:varchar(20)"`

	// Difficulty 是1-5的难度等级
	Difficulty int `gorm:"default:3"`

	Description string

	// IsTimeBased 为true时动作按时长（秒）计量，而不是按次数
	IsTimeBased bool `gorm:"default:false"`
}

// WorkoutTemplate 是用户自定义的训练模板
type WorkoutTemplate struct {
	gorm.Model

	OwnerUUID string `gorm:"index;type:varchar(36);not null"`
	Name      string `gorm:"not null"`
	IsPublic  bool   `gorm:"default:false"`

	Items []TemplateItem `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// TemplateItem 是模板中的一个条目
type TemplateItem struct {
	gorm.Model

	TemplateID  uint `gorm:"index;not null"`
	ExerciseID  uint `gorm:"not null"`
	Exercise    Exercise
	Order       int `gorm:"default:0"`
	Sets        int `gorm:"default:3"`
	Reps        int `gorm:"default:10"`
	RestSeconds int `gorm:"default:90"`
	Notes       string
}

// WorkoutSession 是一次训练，一天可以有多次
type WorkoutSession struct {
	gorm.Model

	OwnerUUID string `gorm:"index;type:varchar(36);not null"`

	// Date 是训练日期，统一截断到当天零点
	Date time.Time `gorm:"index;not null"`

	FromTemplateID *uint

	// DurationMinutes 在完成训练时写入
	DurationMinutes int `gorm:"default:0"`

	// IsCompleted 标记训练是否已完成；只有已完成的训练参与统计
	IsCompleted bool `gorm:"index;default:false"`

	Notes string

	SetLogs []SetLog `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TotalVolume 返回这次训练所有组的训练量之和
func (s *WorkoutSession) TotalVolume() float64 {
	var total float64
	for i := range s.SetLogs {
		total += s.SetLogs[i].Volume()
	}
	return total
}

// EstimatedCaloriesBurned 按固定常数估算这次训练的热量消耗
func (s *WorkoutSession) EstimatedCaloriesBurned() float64 {
	if s.DurationMinutes == 0 {
		return 0
	}
	return float64(s.DurationMinutes) * KcalPerMinute
}

// SetLog 是一次训练中记录的一组
// Reps 与 DurationSeconds 互斥：按次数计量的动作填Reps，按时长计量的动作填DurationSeconds。
type SetLog struct {
	gorm.Model

	SessionID  uint `gorm:"index;not null"`
	ExerciseID uint `gorm:"index;not null"`
	Exercise   Exercise

	SetNumber int `gorm:"not null"`

	Reps            *int
	DurationSeconds *int

	WeightKg float64 `gorm:"not null"`

	RPE   *int
	Notes string
}

// Volume 返回这一组的训练量：重量×次数；时长计量的动作只取重量。
func (l *SetLog) Volume() float64 {
	if l.Reps != nil && *l.Reps > 0 {
		return l.WeightKg * float64(*l.Reps)
	}
	return l.WeightKg
}

// PR 是用户在某个动作、某个指标上的个人纪录
// (OwnerUUID, ExerciseID, Metric) 上的唯一索引保证每个组合至多一条记录。
type PR struct {
	gorm.Model

	OwnerUUID  string `gorm:"uniqueIndex:idx_pr_owner_exercise_metric;type:varchar(36);not null"`
	ExerciseID uint   `gorm:"uniqueIndex:idx_pr_owner_exercise_metric;not null"`
	Exercise   Exercise
	Metric     string `gorm:"uniqueIndex:idx_pr_owner_exercise_metric;type:varchar(20);not null"`

	Value float64 `gorm:"not null"`

	// Date 是创下纪录的训练日期
	Date time.Time `gorm:"index;not null"`
}
