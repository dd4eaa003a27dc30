package nutrition

import (
	"time"

	"gorm.io/gorm"
)

// 餐次取值
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Food 表示一种食物及其每100克的营养成分
type Food struct {
	gorm.Model

	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`

	// 每100克的营养值
	KcalPer100g    float64 `gorm:"not null"`
	ProteinPer100g float64 `gorm:"not null"`
	CarbsPer100g   float64 `gorm:"not null"`
	FatPer100g     float64 `gorm:"not null"`

	// IsPublic 区分全局食物库与用户自建食物
	IsPublic bool `gorm:"default:true"`

	// OwnerUUID 仅对用户自建食物有值
	OwnerUUID string `gorm:"index;type:varchar(36)"`
}

// FoodLog 是用户某天对某种食物的一次摄入记录。
// 营养总量永远从数量与每100克值实时推导，绝不落库——没有缓存就没有失效问题。
type FoodLog struct {
	gorm.Model

	OwnerUUID string    `gorm:"index;type:varchar(36);not null"`
	Date      time.Time `gorm:"index;not null"`

	FoodID uint `gorm:"not null"`
	Food   Food

	// Grams 是摄入的克数
	Grams float64 `gorm:"not null"`

	MealType string `gorm:"type:varchar(20);default:snack"`
}

// Kcal 返回这条记录的热量
func (l *FoodLog) Kcal() float64 {
	return l.Food.KcalPer100g * l.Grams / 100
}

// Protein 返回这条记录的蛋白质克数
func (l *FoodLog) Protein() float64 {
	return l.Food.ProteinPer100g * l.Grams / 100
}

// Carbs 返回这条记录的碳水克数
func (l *FoodLog) Carbs() float64 {
	return l.Food.CarbsPer100g * l.Grams / 100
}

// Fat 返回这条记录的脂肪克数
func (l *FoodLog) Fat() float64 {
	return l.Food.FatPer100g * l.Grams / 100
}
