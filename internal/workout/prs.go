package workout

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// prCandidate 是一次训练中某个动作在某个指标上的最好成绩
type prCandidate struct {
	ExerciseID uint
	Metric     string
	Value      float64
}

// collectPRCandidates 从一次训练的组记录中提取PR候选值。
// 每个动作产生max_weight候选；按次数计量的动作额外产生max_reps候选。
func collectPRCandidates(session *WorkoutSession) []prCandidate {
	maxWeight := make(map[uint]float64)
	maxReps := make(map[uint]int)

	for i := range session.SetLogs {
		log := &session.SetLogs[i]
		if log.WeightKg > maxWeight[log.ExerciseID] {
			maxWeight[log.ExerciseID] = log.WeightKg
		}
		if log.Reps != nil && *log.Reps > maxReps[log.ExerciseID] {
			maxReps[log.ExerciseID] = *log.Reps
		}
	}

	var candidates []prCandidate
	for exerciseID, weight := range maxWeight {
		if weight > 0 {
			candidates = append(candidates, prCandidate{exerciseID, MetricMaxWeight, weight})
		}
	}
	for exerciseID, reps := range maxReps {
		if reps > 0 {
			candidates = append(candidates, prCandidate{exerciseID, MetricMaxReps, float64(reps)})
		}
	}
	return candidates
}

// upsertPRTx 在事务中有条件地刷新一条PR。
// 先用行锁读出现有记录，只有新值严格大于旧值时才覆盖；
// 两个并发的完成操作因此不会用较小的值覆盖较大的值。
func upsertPRTx(tx *gorm.DB, ownerUUID string, candidate prCandidate, date time.Time) error {
	var existing PR
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_uuid = ? AND exercise_id = ? AND metric = ?",
			ownerUUID, candidate.ExerciseID, candidate.Metric).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		newPR := PR{
			OwnerUUID:  ownerUUID,
			ExerciseID: candidate.ExerciseID,
			Metric:     candidate.Metric,
			Value:      candidate.Value,
			Date:       date,
		}
		return tx.Create(&newPR).Error
	}
	if err != nil {
		return err
	}

	if candidate.Value > existing.Value {
		existing.Value = candidate.Value
		existing.Date = date
		return tx.Save(&existing).Error
	}
	// 新值不优于现有纪录，保持不变
	return nil
}

// recomputePRsForExerciseTx 在删除训练后对一个动作做完整的PR重算。
// 扫描该用户剩余所有已完成训练中这个动作的组记录，重新求出最大值；
// 没有任何剩余记录时删除整条PR，绝不留下0值记录。
func recomputePRsForExerciseTx(tx *gorm.DB, ownerUUID string, exerciseID uint) error {
	var logs []SetLog
	err := tx.
		Joins("JOIN workout_sessions ON workout_sessions.id = set_logs.session_id").
		Where("workout_sessions.owner_uuid = ? AND workout_sessions.is_completed = ? AND workout_sessions.deleted_at IS NULL", ownerUUID, true).
		Where("set_logs.exercise_id = ?", exerciseID).
		Find(&logs).Error
	if err != nil {
		return err
	}

	type best struct {
		value float64
		found bool
	}
	maxima := map[string]*best{
		MetricMaxWeight: {},
		MetricMaxReps:   {},
	}
	for i := range logs {
		log := &logs[i]
		if log.WeightKg > 0 && log.WeightKg > maxima[MetricMaxWeight].value {
			maxima[MetricMaxWeight].value = log.WeightKg
			maxima[MetricMaxWeight].found = true
		}
		if log.Reps != nil && float64(*log.Reps) > maxima[MetricMaxReps].value {
			maxima[MetricMaxReps].value = float64(*log.Reps)
			maxima[MetricMaxReps].found = true
		}
	}

	for metric, b := range maxima {
		if !b.found {
			// 没有剩余记录，整条删除
			if err := tx.Unscoped().
				Where("owner_uuid = ? AND exercise_id = ? AND metric = ?", ownerUUID, exerciseID, metric).
				Delete(&PR{}).Error; err != nil {
				return err
			}
			continue
		}

		var existing PR
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_uuid = ? AND exercise_id = ? AND metric = ?", ownerUUID, exerciseID, metric).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		// 重算允许数值下降，这是PR单调性规则唯一的例外
		if existing.Value != b.value {
			existing.Value = b.value
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
