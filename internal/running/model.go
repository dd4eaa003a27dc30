package running

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 卡路里估算常数：体重(kg) × 距离(km) × 1.036。
// DefaultWeightKg 在用户未设置体重时使用。
const (
	CaloriesPerKgKm = 1.036
	DefaultWeightKg = 70.0
)

// Run 是一次跑步记录（目前只支持手动录入）
type Run struct {
	gorm.Model

	OwnerUUID string `gorm:"index;type:varchar(36);not null"`

	// Source 是数据来源，目前恒为 "manual"
	Source string `gorm:"type:varchar(10);default:manual"`

	Name string

	// DistanceM 是距离（米）
	DistanceM float64 `gorm:"not null"`

	// MovingTimeS / ElapsedTimeS 是移动时长与总时长（秒）
	MovingTimeS  int `gorm:"not null"`
	ElapsedTimeS int

	StartDate time.Time `gorm:"index;not null"`

	// CaloriesBurned 为空时在创建时按体重估算后填入
	CaloriesBurned *float64

	// AveragePaceSPerKm 是平均配速（秒/公里），由距离和时长推导后存储
	AveragePaceSPerKm *float64
}

// DistanceKm 返回距离（公里）
func (r *Run) DistanceKm() float64 {
	if r.DistanceM <= 0 {
		return 0
	}
	return r.DistanceM / 1000
}

// EstimateCalories 按体重估算这次跑步的热量消耗
func (r *Run) EstimateCalories(weightKg float64) float64 {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}
	return weightKg * r.DistanceKm() * CaloriesPerKgKm
}

// Calories 返回记录的热量；未记录时返回0（估算在创建时完成）
func (r *Run) Calories() float64 {
	if r.CaloriesBurned == nil {
		return 0
	}
	return *r.CaloriesBurned
}

// MovingTimeHMS 返回形如 "42m13s" 或 "1h03m20s" 的可读时长
func (r *Run) MovingTimeHMS() string {
	s := r.MovingTimeS
	if s < 0 {
		s = 0
	}
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	return fmt.Sprintf("%dm%02ds", m, sec)
}

// PaceMinPerKm 返回形如 "4:35 /km" 的配速；无配速时返回空字符串
func (r *Run) PaceMinPerKm() string {
	if r.AveragePaceSPerKm == nil || *r.AveragePaceSPerKm <= 0 {
		return ""
	}
	total := int(*r.AveragePaceSPerKm)
	return fmt.Sprintf("%d:%02d /km", total/60, total%60)
}
