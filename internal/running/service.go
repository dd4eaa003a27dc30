package running

import (
	"errors"
	"fmt"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/user"
)

// ErrNotFound 表示请求的记录不存在或不属于当前用户
var ErrNotFound = errors.New("记录不存在")

// ErrManualDisabled 表示用户的跑步数据来源不是手动录入
var ErrManualDisabled = errors.New("当前档案的跑步数据来源不是手动录入")

// ListRuns 返回用户的全部跑步记录，按开始时间倒序
func ListRuns(ownerUUID string) ([]Run, error) {
	var runs []Run
	err := database.DB.
		Where("owner_uuid = ?", ownerUUID).
		Order("start_date desc").
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询跑步记录: %w", err)
	}
	return runs, nil
}

// RunInput 是手动录入一次跑步的输入
type RunInput struct {
	Name           string
	StartDate      time.Time
	DistanceM      float64
	MovingTimeS    int
	CaloriesBurned *float64
}

// AddManualRun 手动录入一次跑步。
// 档案的跑步数据来源必须是manual；未提供热量时按体重估算（默认70kg）。
func AddManualRun(ownerUUID string, input RunInput) (*Run, error) {
	if err := user.ActivateUser(ownerUUID); err != nil {
		return nil, err
	}

	profile, err := user.GetProfile(ownerUUID)
	if err != nil {
		return nil, err
	}
	if profile.RunningDataSource != user.RunningSourceManual {
		return nil, ErrManualDisabled
	}

	if input.DistanceM <= 0 {
		return nil, errors.New("距离必须为正")
	}
	if input.MovingTimeS <= 0 {
		return nil, errors.New("时长必须为正")
	}

	run := Run{
		OwnerUUID:      ownerUUID,
		Source:         "manual",
		Name:           input.Name,
		DistanceM:      input.DistanceM,
		MovingTimeS:    input.MovingTimeS,
		ElapsedTimeS:   input.MovingTimeS,
		StartDate:      input.StartDate,
		CaloriesBurned: input.CaloriesBurned,
	}

	// 配速由距离和时长推导后存储
	pace := float64(input.MovingTimeS) / run.DistanceKm()
	run.AveragePaceSPerKm = &pace

	// 未提供热量时按档案体重估算
	if run.CaloriesBurned == nil {
		weight := DefaultWeightKg
		if profile.WeightKg != nil {
			weight = *profile.WeightKg
		}
		estimated := run.EstimateCalories(weight)
		run.CaloriesBurned = &estimated
	}

	if err := database.DB.Create(&run).Error; err != nil {
		return nil, fmt.Errorf("无法创建跑步记录: %w", err)
	}
	return &run, nil
}

// DeleteRun 删除用户自己的一次跑步记录
func DeleteRun(ownerUUID string, runID uint) error {
	result := database.DB.Where("owner_uuid = ?", ownerUUID).Delete(&Run{}, runID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
