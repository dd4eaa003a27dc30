package workout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Exercise{}, &WorkoutTemplate{}, &TemplateItem{}, &WorkoutSession{}, &SetLog{}, &PR{}))
	return db
}

func TestSessionAndTemplateAssociations(t *testing.T) {
	db := openTestDB(t)
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	// 子表外键是SessionID/TemplateID，关联必须能建表、写入并Preload回来
	session := WorkoutSession{
		OwnerUUID:   "u1",
		Date:        date,
		IsCompleted: true,
		SetLogs: []SetLog{
			{ExerciseID: 1, SetNumber: 1, Reps: intPtr(8), WeightKg: 80},
			{ExerciseID: 1, SetNumber: 2, Reps: intPtr(6), WeightKg: 85},
		},
	}
	require.NoError(t, db.Create(&session).Error)

	var loaded WorkoutSession
	require.NoError(t, db.Preload("SetLogs").First(&loaded, session.ID).Error)
	require.Len(t, loaded.SetLogs, 2)
	assert.Equal(t, session.ID, loaded.SetLogs[0].SessionID)

	template := WorkoutTemplate{
		OwnerUUID: "u1",
		Name:      "Push",
		Items: []TemplateItem{
			{ExerciseID: 1, Order: 1, Sets: 4, Reps: 8},
		},
	}
	require.NoError(t, db.Create(&template).Error)

	var loadedTemplate WorkoutTemplate
	require.NoError(t, db.Preload("Items").First(&loadedTemplate, template.ID).Error)
	require.Len(t, loadedTemplate.Items, 1)
	assert.Equal(t, template.ID, loadedTemplate.Items[0].TemplateID)
}

func findPR(t *testing.T, db *gorm.DB, owner string, exerciseID uint, metric string) (*PR, bool) {
	t.Helper()
	var pr PR
	err := db.Where("owner_uuid = ? AND exercise_id = ? AND metric = ?", owner, exerciseID, metric).First(&pr).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false
	}
	require.NoError(t, err)
	return &pr, true
}

func TestUpsertPRNeverLowersValue(t *testing.T) {
	db := openTestDB(t)
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	// 第一次写入创建纪录
	err := upsertPRTx(db, "u1", prCandidate{ExerciseID: 1, Metric: MetricMaxWeight, Value: 100}, date)
	require.NoError(t, err)
	pr, ok := findPR(t, db, "u1", 1, MetricMaxWeight)
	require.True(t, ok)
	assert.InDelta(t, 100.0, pr.Value, 1e-9)

	// 较小的值不覆盖
	err = upsertPRTx(db, "u1", prCandidate{ExerciseID: 1, Metric: MetricMaxWeight, Value: 80}, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	pr, _ = findPR(t, db, "u1", 1, MetricMaxWeight)
	assert.InDelta(t, 100.0, pr.Value, 1e-9)
	assert.True(t, pr.Date.Equal(date))

	// 严格更大的值才覆盖
	err = upsertPRTx(db, "u1", prCandidate{ExerciseID: 1, Metric: MetricMaxWeight, Value: 110}, date.AddDate(0, 0, 2))
	require.NoError(t, err)
	pr, _ = findPR(t, db, "u1", 1, MetricMaxWeight)
	assert.InDelta(t, 110.0, pr.Value, 1e-9)

	// 相等的值也不覆盖日期
	err = upsertPRTx(db, "u1", prCandidate{ExerciseID: 1, Metric: MetricMaxWeight, Value: 110}, date.AddDate(0, 0, 9))
	require.NoError(t, err)
	pr, _ = findPR(t, db, "u1", 1, MetricMaxWeight)
	assert.True(t, pr.Date.Equal(date.AddDate(0, 0, 2)))
}

func TestRecomputeRemovesPRWhenNoEntriesRemain(t *testing.T) {
	db := openTestDB(t)
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	session := WorkoutSession{
		OwnerUUID:   "u1",
		Date:        date,
		IsCompleted: true,
		SetLogs: []SetLog{
			{ExerciseID: 1, SetNumber: 1, Reps: intPtr(5), WeightKg: 100},
		},
	}
	require.NoError(t, db.Create(&session).Error)
	require.NoError(t, upsertPRTx(db, "u1", prCandidate{ExerciseID: 1, Metric: MetricMaxWeight, Value: 100}, date))

	// 删除唯一产生纪录的训练，重算后纪录必须整条消失，不能留下0值
	require.NoError(t, db.Where("session_id = ?", session.ID).Delete(&SetLog{}).Error)
	require.NoError(t, db.Delete(&session).Error)
	require.NoError(t, recomputePRsForExerciseTx(db, "u1", 1))

	_, ok := findPR(t, db, "u1", 1, MetricMaxWeight)
	assert.False(t, ok)
}

func TestRecomputeLowersPRToRemainingMax(t *testing.T) {
	db := openTestDB(t)
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	heavy := WorkoutSession{
		OwnerUUID:   "u1",
		Date:        date,
		IsCompleted: true,
		SetLogs:     []SetLog{{ExerciseID: 1, SetNumber: 1, Reps: intPtr(3), WeightKg: 100}},
	}
	light := WorkoutSession{
		OwnerUUID:   "u1",
		Date:        date.AddDate(0, 0, -7),
		IsCompleted: true,
		SetLogs:     []SetLog{{ExerciseID: 1, SetNumber: 1, Reps: intPtr(8), WeightKg: 80}},
	}
	require.NoError(t, db.Create(&heavy).Error)
	require.NoError(t, db.Create(&light).Error)
	require.NoError(t, upsertPRTx(db, "u1", prCandidate{ExerciseID: 1, Metric: MetricMaxWeight, Value: 100}, date))
	require.NoError(t, upsertPRTx(db, "u1", prCandidate{ExerciseID: 1, Metric: MetricMaxReps, Value: 8}, date.AddDate(0, 0, -7)))

	// 删掉最重的那次训练，重算允许数值下降到剩余的最大值
	require.NoError(t, db.Where("session_id = ?", heavy.ID).Delete(&SetLog{}).Error)
	require.NoError(t, db.Delete(&heavy).Error)
	require.NoError(t, recomputePRsForExerciseTx(db, "u1", 1))

	pr, ok := findPR(t, db, "u1", 1, MetricMaxWeight)
	require.True(t, ok)
	assert.InDelta(t, 80.0, pr.Value, 1e-9)

	reps, ok := findPR(t, db, "u1", 1, MetricMaxReps)
	require.True(t, ok)
	assert.InDelta(t, 8.0, reps.Value, 1e-9)
}

func TestRecomputeIgnoresIncompleteSessions(t *testing.T) {
	db := openTestDB(t)
	date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)

	draft := WorkoutSession{
		OwnerUUID:   "u1",
		Date:        date,
		IsCompleted: false,
		SetLogs:     []SetLog{{ExerciseID: 1, SetNumber: 1, Reps: intPtr(5), WeightKg: 200}},
	}
	require.NoError(t, db.Create(&draft).Error)
	require.NoError(t, recomputePRsForExerciseTx(db, "u1", 1))

	_, ok := findPR(t, db, "u1", 1, MetricMaxWeight)
	assert.False(t, ok)
}
