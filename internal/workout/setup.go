package workout

import (
	"fmt"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
)

// migrateDB 负责自动迁移workout模块的全部表结构
func migrateDB() error {
	err := database.DB.AutoMigrate(
		&Exercise{},
		&WorkoutTemplate{},
		&TemplateItem{},
		&WorkoutSession{},
		&SetLog{},
		&PR{},
	)
	if err != nil {
		return fmt.Errorf("无法迁移workout表: %w", err)
	}
	fmt.Println("Workout数据库表迁移成功。")
	return nil
}

// SeedExercises 在动作库为空时写入默认动作
func SeedExercises() error {
	var count int64
	if err := database.DB.Model(&Exercise{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []Exercise{
		{Name: "Développé couché", Slug: "developpe-couche", MuscleGroup: "chest", Equipment: "barbell", Difficulty: 3},
		{Name: "Développé épaules", Slug: "developpe-epaules", MuscleGroup: "shoulders", Equipment: "dumbbell", Difficulty: 3},
		{Name: "Squat", Slug: "squat", MuscleGroup: "legs", Equipment: "barbell", Difficulty: 4},
		{Name: "Presse à cuisses", Slug: "presse-a-cuisses", MuscleGroup: "legs", Equipment: "machine", Difficulty: 2},
		{Name: "Soulevé de terre", Slug: "souleve-de-terre", MuscleGroup: "back", Equipment: "barbell", Difficulty: 5},
		{Name: "Rowing barre", Slug: "rowing-barre", MuscleGroup: "back", Equipment: "barbell", Difficulty: 3},
		{Name: "Tractions", Slug: "tractions", MuscleGroup: "back", Equipment: "bodyweight", Difficulty: 4},
		{Name: "Curl biceps", Slug: "curl-biceps", MuscleGroup: "arms", Equipment: "dumbbell", Difficulty: 2},
		{Name: "Extensions triceps", Slug: "extensions-triceps", MuscleGroup: "arms", Equipment: "cable", Difficulty: 2},
		{Name: "Crunchs", Slug: "crunchs", MuscleGroup: "core", Equipment: "bodyweight", Difficulty: 1},
		{Name: "Planche", Slug: "planche", MuscleGroup: "core", Equipment: "bodyweight", Difficulty: 2, IsTimeBased: true},
		{Name: "Gainage latéral", Slug: "gainage-lateral", MuscleGroup: "core", Equipment: "bodyweight", Difficulty: 2, IsTimeBased: true},
	}
	if err := database.DB.Create(&defaults).Error; err != nil {
		return fmt.Errorf("无法写入默认动作库: %w", err)
	}
	fmt.Printf("动作库种子数据写入成功，共 %d 个动作。\n", len(defaults))
	return nil
}

// PrimeCachedDB 是workout模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	return nil
}
