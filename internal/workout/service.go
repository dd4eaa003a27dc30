package workout

import (
	"errors"
	"fmt"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/platform/database"
	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/FitnessArc/fitness-arc-backend/pkg/timex"
	"gorm.io/gorm"
)

// ErrNotFound 表示请求的记录不存在或不属于当前用户
var ErrNotFound = errors.New("记录不存在")

// sessionChangeListeners 保存所有关心训练数据变化的回调。
// 排行榜模块在启动时注册自己，避免workout反向依赖leaderboard。
var sessionChangeListeners []func(ownerUUID string)

// RegisterSessionChangeListener 注册一个在训练完成或删除后被调用的回调。
func RegisterSessionChangeListener(fn func(ownerUUID string)) {
	sessionChangeListeners = append(sessionChangeListeners, fn)
}

func notifySessionChange(ownerUUID string) {
	for _, fn := range sessionChangeListeners {
		fn(ownerUUID)
	}
}

// --- 动作库 ---

// ListExercises 按肌群和器械筛选动作库
func ListExercises(muscleGroup, equipment string) ([]Exercise, error) {
	query := database.DB.Order("name asc")
	if muscleGroup != "" {
		query = query.Where("muscle_group = ?", muscleGroup)
	}
	if equipment != "" {
		query = query.Where("equipment = ?", equipment)
	}
	var exercises []Exercise
	if err := query.Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("无法查询动作库: %w", err)
	}
	return exercises, nil
}

// GetExercise 按ID读取单个动作
func GetExercise(id uint) (*Exercise, error) {
	var exercise Exercise
	err := database.DB.First(&exercise, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// --- 训练模板 ---

// ListTemplates 返回用户的所有模板（含条目）
func ListTemplates(ownerUUID string) ([]WorkoutTemplate, error) {
	var templates []WorkoutTemplate
	err := database.DB.
		Where("owner_uuid = ?", ownerUUID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("template_items.\"order\" asc") }).
		Preload("Items.Exercise").
		Order("created_at desc").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询训练模板: %w", err)
	}
	return templates, nil
}

// TemplateItemInput 是创建模板时的单个条目
type TemplateItemInput struct {
	ExerciseID  uint
	Order       int
	Sets        int
	Reps        int
	RestSeconds int
	Notes       string
}

// CreateTemplate 为用户创建一个新模板
func CreateTemplate(ownerUUID, name string, items []TemplateItemInput) (*WorkoutTemplate, error) {
	if err := user.ActivateUser(ownerUUID); err != nil {
		return nil, err
	}
	if name == "" {
		name = "Mon template"
	}

	template := WorkoutTemplate{OwnerUUID: ownerUUID, Name: name}
	for _, item := range items {
		template.Items = append(template.Items, TemplateItem{
			ExerciseID:  item.ExerciseID,
			Order:       item.Order,
			Sets:        item.Sets,
			Reps:        item.Reps,
			RestSeconds: item.RestSeconds,
			Notes:       item.Notes,
		})
	}
	if err := database.DB.Create(&template).Error; err != nil {
		return nil, fmt.Errorf("无法创建训练模板: %w", err)
	}
	return &template, nil
}

// DeleteTemplate 删除用户自己的模板及其条目
func DeleteTemplate(ownerUUID string, templateID uint) error {
	result := database.DB.Where("owner_uuid = ?", ownerUUID).Delete(&WorkoutTemplate{}, templateID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return database.DB.Where("template_id = ?", templateID).Delete(&TemplateItem{}).Error
}

// --- 训练 ---

// StartSession 开始一次新的训练，可选地基于模板
func StartSession(ownerUUID string, templateID *uint, date time.Time) (*WorkoutSession, error) {
	if err := user.ActivateUser(ownerUUID); err != nil {
		return nil, err
	}

	if templateID != nil {
		var template WorkoutTemplate
		err := database.DB.Where("owner_uuid = ?", ownerUUID).First(&template, *templateID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
	}

	session := WorkoutSession{
		OwnerUUID:      ownerUUID,
		Date:           timex.Day(date),
		FromTemplateID: templateID,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("无法创建训练: %w", err)
	}
	return &session, nil
}

// ListSessions 返回用户最近的训练列表（不含组记录）
func ListSessions(ownerUUID string, limit int) ([]WorkoutSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var sessions []WorkoutSession
	err := database.DB.
		Where("owner_uuid = ?", ownerUUID).
		Order("date desc, id desc").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询训练列表: %w", err)
	}
	return sessions, nil
}

// GetSession 返回一次训练及其全部组记录
func GetSession(ownerUUID string, sessionID uint) (*WorkoutSession, error) {
	var session WorkoutSession
	err := database.DB.
		Where("owner_uuid = ?", ownerUUID).
		Preload("SetLogs", func(db *gorm.DB) *gorm.DB { return db.Order("set_logs.id asc") }).
		Preload("SetLogs.Exercise").
		First(&session, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SetInput 是记录一组时的输入
type SetInput struct {
	ExerciseID      uint
	SetNumber       int
	Reps            *int
	DurationSeconds *int
	WeightKg        float64
	RPE             *int
	Notes           string
}

// LogSet 在一次训练中记录一组。
// 校验组的计量方式与动作的计量方式一致：按次数的动作必须填Reps，
// 按时长的动作必须填DurationSeconds，两者互斥。
func LogSet(ownerUUID string, sessionID uint, input SetInput) (*SetLog, error) {
	session, err := GetSession(ownerUUID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, errors.New("训练已完成，无法继续记录")
	}

	exercise, err := GetExercise(input.ExerciseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errors.New("动作不存在")
		}
		return nil, err
	}

	if input.Reps != nil && input.DurationSeconds != nil {
		return nil, errors.New("Reps与DurationSeconds不能同时提供")
	}
	if exercise.IsTimeBased {
		if input.DurationSeconds == nil || *input.DurationSeconds <= 0 {
			return nil, fmt.Errorf("动作 %s 按时长计量，必须提供DurationSeconds", exercise.Name)
		}
	} else {
		if input.Reps == nil || *input.Reps <= 0 {
			return nil, fmt.Errorf("动作 %s 按次数计量，必须提供Reps", exercise.Name)
		}
	}
	if input.WeightKg < 0 {
		return nil, errors.New("重量不能为负")
	}

	setLog := SetLog{
		SessionID:       sessionID,
		ExerciseID:      input.ExerciseID,
		SetNumber:       input.SetNumber,
		Reps:            input.Reps,
		DurationSeconds: input.DurationSeconds,
		WeightKg:        input.WeightKg,
		RPE:             input.RPE,
		Notes:           input.Notes,
	}
	if err := database.DB.Create(&setLog).Error; err != nil {
		return nil, fmt.Errorf("无法记录这一组: %w", err)
	}
	setLog.Exercise = *exercise
	return &setLog, nil
}

// CompleteSession 完成一次训练：写入时长、置完成标记，并更新个人纪录。
// PR的更新在一个行锁事务中完成，只有新值严格大于旧值时才会覆盖。
func CompleteSession(ownerUUID string, sessionID uint, durationMinutes int) (*WorkoutSession, error) {
	if durationMinutes < 0 {
		return nil, errors.New("时长不能为负")
	}

	session, err := GetSession(ownerUUID, sessionID)
	if err != nil {
		return nil, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		session.DurationMinutes = durationMinutes
		session.IsCompleted = true
		if err := tx.Model(&WorkoutSession{}).
			Where("id = ? AND owner_uuid = ?", sessionID, ownerUUID).
			Updates(map[string]interface{}{
				"duration_minutes": durationMinutes,
				"is_completed":     true,
			}).Error; err != nil {
			return err
		}

		// 逐动作取出本次训练的最好成绩，尝试刷新PR
		for _, candidate := range collectPRCandidates(session) {
			if err := upsertPRTx(tx, ownerUUID, candidate, session.Date); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("完成训练失败: %w", err)
	}

	notifySessionChange(ownerUUID)
	return session, nil
}

// DeleteSession 删除一次训练并级联删除其组记录。
// 之后对受影响的动作做一次完整的PR重算：扫描剩余记录重新求最大值，
// 没有剩余记录的PR会被整条删除，而不是留下0值。
func DeleteSession(ownerUUID string, sessionID uint) error {
	session, err := GetSession(ownerUUID, sessionID)
	if err != nil {
		return err
	}

	// 收集受影响的动作
	affected := make(map[uint]bool)
	for _, log := range session.SetLogs {
		affected[log.ExerciseID] = true
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&SetLog{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&WorkoutSession{}, sessionID).Error; err != nil {
			return err
		}
		for exerciseID := range affected {
			if err := recomputePRsForExerciseTx(tx, ownerUUID, exerciseID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("删除训练失败: %w", err)
	}

	notifySessionChange(ownerUUID)
	return nil
}

// ListPRs 返回用户的全部个人纪录（含动作信息）
func ListPRs(ownerUUID string) ([]PR, error) {
	var prs []PR
	err := database.DB.
		Where("owner_uuid = ?", ownerUUID).
		Preload("Exercise").
		Order("date desc").
		Find(&prs).Error
	if err != nil {
		return nil, fmt.Errorf("无法查询个人纪录: %w", err)
	}
	return prs, nil
}
