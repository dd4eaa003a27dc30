package running

import (
	"fmt"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
)

// PrimeCachedDB 是running模块的初始化总入口
func PrimeCachedDB() error {
	if err := database.DB.AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("无法迁移run表: %w", err)
	}
	fmt.Println("Run数据库表迁移成功。")
	return nil
}
