package user

import (
	"errors"
	"fmt"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateProvisionalUser 生成一个临时的、尚未持久化的新用户UUID。
// 这个UUID将被设置到cookie中，但此时尚未被“激活”。
func CreateProvisionalUser() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidUUID 检查一个字符串是否是合法的UUID格式。
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// IsUserActivated 检查一个给定的UUID是否已经被激活（即存在于我们的持久化系统中）。
// 它只查询Redis缓存，以获得最高性能。
func IsUserActivated(uuidStr string) (bool, error) {
	if uuidStr == "" {
		return false, nil
	}
	exists, err := database.RDB.SIsMember(database.Ctx, KnownUsersKey, uuidStr).Result()
	if err != nil {
		return false, fmt.Errorf("检查Redis用户缓存时出错: %w", err)
	}
	return exists, nil
}

// ActivateUser 将一个临时的UUID正式持久化到数据库和缓存中。
// 所有写入用户数据的业务路径都应该先调用它。
func ActivateUser(uuidStr string) error {
	if !IsValidUUID(uuidStr) {
		return fmt.Errorf("无效的用户UUID: %q", uuidStr)
	}

	// Redis可用时先查缓存，避免重复写入
	if database.IsRedisHealthy() {
		activated, err := IsUserActivated(uuidStr)
		if err == nil && activated {
			return nil
		}
	}

	// 开启一个SQLite事务
	tx := database.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("无法开始数据库事务: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback() // 如果发生panic，回滚事务
		}
	}()

	// 在事务中创建数据库记录
	newUser := User{UUID: uuidStr, Goal: GoalMaintain, RunningDataSource: RunningSourceManual}
	if err := tx.Create(&newUser).Error; err != nil {
		tx.Rollback()
		// 如果是因为记录已存在而出错，这不是一个真正的错误
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		// SQLite下重复主键会以UNIQUE约束错误的形式出现
		var existing User
		if findErr := database.DB.Where("uuid = ?", uuidStr).First(&existing).Error; findErr == nil {
			return nil
		}
		return fmt.Errorf("无法在SQLite中创建新用户: %w", err)
	}

	// 尝试将新UUID添加到Redis缓存中。
	// Redis不可用时跳过缓存写入而不是让请求失败：SQLite才是事实来源，
	// 缓存会在健康检查触发的热重建中补齐。
	if database.IsRedisHealthy() {
		if err := database.RDB.SAdd(database.Ctx, KnownUsersKey, uuidStr).Err(); err != nil {
			fmt.Printf("警告: 无法将新用户 %s 添加到Redis缓存: %v\n", uuidStr, err)
		}
	}

	// 提交事务
	return tx.Commit().Error
}

// GetProfile 读取一个用户的档案。用户行不存在时先激活再返回默认档案。
func GetProfile(uuidStr string) (*User, error) {
	var u User
	err := database.DB.Where("uuid = ?", uuidStr).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := ActivateUser(uuidStr); err != nil {
			return nil, err
		}
		err = database.DB.Where("uuid = ?", uuidStr).First(&u).Error
	}
	if err != nil {
		return nil, fmt.Errorf("无法读取用户档案: %w", err)
	}
	return &u, nil
}

// ProfileUpdate 描述一次档案更新，nil字段表示保持不变。
type ProfileUpdate struct {
	WeightKg          *float64
	HeightCm          *int
	Sex               *string
	Goal              *string
	RunningDataSource *string
}

// UpdateProfile 更新用户档案中被显式提供的字段。
func UpdateProfile(uuidStr string, update ProfileUpdate) (*User, error) {
	u, err := GetProfile(uuidStr)
	if err != nil {
		return nil, err
	}

	if update.WeightKg != nil {
		u.WeightKg = update.WeightKg
	}
	if update.HeightCm != nil {
		u.HeightCm = update.HeightCm
	}
	if update.Sex != nil {
		u.Sex = *update.Sex
	}
	if update.Goal != nil {
		switch *update.Goal {
		case GoalBulk, GoalCut, GoalMaintain:
			u.Goal = *update.Goal
		default:
			return nil, fmt.Errorf("无效的训练目标: %q", *update.Goal)
		}
	}
	if update.RunningDataSource != nil {
		switch *update.RunningDataSource {
		case RunningSourceManual, RunningSourceStrava, RunningSourceGarmin:
			u.RunningDataSource = *update.RunningDataSource
		default:
			return nil, fmt.Errorf("无效的跑步数据来源: %q", *update.RunningDataSource)
		}
	}

	if err := database.DB.Save(u).Error; err != nil {
		return nil, fmt.Errorf("无法保存用户档案: %w", err)
	}
	return u, nil
}

// GetWeightKg 返回用户体重，未设置时返回 (0, false)。
// 仪表盘和跑步模块通过它读取估算所需的体重。
func GetWeightKg(uuidStr string) (float64, bool) {
	var u User
	if err := database.DB.Where("uuid = ?", uuidStr).First(&u).Error; err != nil {
		return 0, false
	}
	if u.WeightKg == nil {
		return 0, false
	}
	return *u.WeightKg, true
}
