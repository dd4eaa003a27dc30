package nutrition

import (
	"fmt"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
)

// migrateDB 负责自动迁移nutrition模块的表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Food{}, &FoodLog{}); err != nil {
		return fmt.Errorf("无法迁移nutrition表: %w", err)
	}
	fmt.Println("Nutrition数据库表迁移成功。")
	return nil
}

// SeedFoods 在食物库为空时写入默认食物（每100克营养值）
func SeedFoods() error {
	var count int64
	if err := database.DB.Model(&Food{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []Food{
		{Name: "Poulet (blanc)", Slug: "poulet-blanc", KcalPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatPer100g: 3.6},
		{Name: "Riz blanc cuit", Slug: "riz-blanc-cuit", KcalPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28, FatPer100g: 0.3},
		{Name: "Oeuf entier", Slug: "oeuf-entier", KcalPer100g: 155, ProteinPer100g: 13, CarbsPer100g: 1.1, FatPer100g: 11},
		{Name: "Flocons d'avoine", Slug: "flocons-avoine", KcalPer100g: 389, ProteinPer100g: 16.9, CarbsPer100g: 66.3, FatPer100g: 6.9},
		{Name: "Banane", Slug: "banane", KcalPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 22.8, FatPer100g: 0.3},
		{Name: "Saumon", Slug: "saumon", KcalPer100g: 208, ProteinPer100g: 20, CarbsPer100g: 0, FatPer100g: 13},
		{Name: "Fromage blanc 0%", Slug: "fromage-blanc-0", KcalPer100g: 47, ProteinPer100g: 8, CarbsPer100g: 4, FatPer100g: 0.2},
		{Name: "Amandes", Slug: "amandes", KcalPer100g: 579, ProteinPer100g: 21.2, CarbsPer100g: 21.6, FatPer100g: 49.9},
	}
	if err := database.DB.Create(&defaults).Error; err != nil {
		return fmt.Errorf("无法写入默认食物库: %w", err)
	}
	fmt.Printf("食物库种子数据写入成功，共 %d 种食物。\n", len(defaults))
	return nil
}

// PrimeCachedDB 是nutrition模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	return nil
}
