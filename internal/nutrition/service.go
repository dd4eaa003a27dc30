package nutrition

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/FitnessArc/fitness-arc-backend/pkg/timex"
	"gorm.io/gorm"
)

// ErrNotFound 表示请求的记录不存在或不属于当前用户
var ErrNotFound = errors.New("记录不存在")

// ListFoods 返回对用户可见的食物：全局食物库加上用户自建的食物。
// search 非空时按名称做模糊匹配。
func ListFoods(ownerUUID, search string) ([]Food, error) {
	query := database.DB.
		Where("is_public = ? OR owner_uuid = ?", true, ownerUUID).
		Order("name asc")
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	var foods []Food
	if err := query.Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("无法查询食物库: %w", err)
	}
	return foods, nil
}

// FoodInput 是创建自建食物时的输入
type FoodInput struct {
	Name           string
	KcalPer100g    float64
	ProteinPer100g float64
	CarbsPer100g   float64
	FatPer100g     float64
}

// CreateFood 为用户创建一种自建食物
func CreateFood(ownerUUID string, input FoodInput) (*Food, error) {
	if err := user.ActivateUser(ownerUUID); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.New("食物名称不能为空")
	}
	if input.KcalPer100g < 0 || input.ProteinPer100g < 0 || input.CarbsPer100g < 0 || input.FatPer100g < 0 {
		return nil, errors.New("营养值不能为负")
	}

	food := Food{
		Name:           input.Name,
		Slug:           slugify(input.Name) + "-" + ownerUUID[:8],
		KcalPer100g:    input.KcalPer100g,
		ProteinPer100g: input.ProteinPer100g,
		CarbsPer100g:   input.CarbsPer100g,
		FatPer100g:     input.FatPer100g,
		IsPublic:       false,
		OwnerUUID:      ownerUUID,
	}
	if err := database.DB.Create(&food).Error; err != nil {
		return nil, fmt.Errorf("无法创建食物: %w", err)
	}
	return &food, nil
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
	return strings.Trim(s, "-")
}

// LogInput 是记录一次摄入的输入
type LogInput struct {
	FoodID   uint
	Date     time.Time
	Grams    float64
	MealType string
}

// AddLog 为用户记录一次食物摄入
func AddLog(ownerUUID string, input LogInput) (*FoodLog, error) {
	if err := user.ActivateUser(ownerUUID); err != nil {
		return nil, err
	}
	if input.Grams <= 0 {
		return nil, errors.New("克数必须为正")
	}
	switch input.MealType {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
	case "":
		input.MealType = MealSnack
	default:
		return nil, fmt.Errorf("无效的餐次: %q", input.MealType)
	}

	var food Food
	err := database.DB.
		Where("id = ? AND (is_public = ? OR owner_uuid = ?)", input.FoodID, true, ownerUUID).
		First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("食物不存在")
	}
	if err != nil {
		return nil, err
	}

	log := FoodLog{
		OwnerUUID: ownerUUID,
		Date:      timex.Day(input.Date),
		FoodID:    input.FoodID,
		Grams:     input.Grams,
		MealType:  input.MealType,
	}
	if err := database.DB.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("无法记录摄入: %w", err)
	}
	log.Food = food
	return &log, nil
}

// DeleteLog 删除用户自己的一条摄入记录
func DeleteLog(ownerUUID string, logID uint) error {
	result := database.DB.Where("owner_uuid = ?", ownerUUID).Delete(&FoodLog{}, logID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DayTotals 是一天的营养总量
type DayTotals struct {
	Kcal    float64
	Protein float64
	Carbs   float64
	Fat     float64
}

// ListDayLogs 返回用户某天的全部摄入记录（含食物）及当天总量。
// 总量按 每100克值×克数/100 逐条推导后求和。
func ListDayLogs(ownerUUID string, date time.Time) ([]FoodLog, DayTotals, error) {
	day := timex.Day(date)
	var logs []FoodLog
	err := database.DB.
		Where("owner_uuid = ? AND date = ?", ownerUUID, day).
		Preload("Food").
		Order("meal_type asc, id asc").
		Find(&logs).Error
	if err != nil {
		return nil, DayTotals{}, fmt.Errorf("无法查询摄入记录: %w", err)
	}

	var totals DayTotals
	for i := range logs {
		totals.Kcal += logs[i].Kcal()
		totals.Protein += logs[i].Protein()
		totals.Carbs += logs[i].Carbs()
		totals.Fat += logs[i].Fat()
	}
	return logs, totals, nil
}
