package metadata

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- 通用访问器 ---

// GetValue 从metadata表中读取指定key的值。
// key不存在时返回空字符串，这是一个合法的缺省值。
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue 创建或更新指定key的值。
// 使用GORM的OnConflict子句实现原子的upsert操作。
func SetValue(db *gorm.DB, key, value string) error {
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- 类型转换辅助函数 ---

// GetLeaderboardLastRefresh 读取最近一次排行榜刷新时间。
// 从未刷新过时返回零值时间。
func GetLeaderboardLastRefresh(db *gorm.DB) (time.Time, error) {
	valueStr, err := GetValue(db, LeaderboardLastRefreshKey)
	if err != nil || valueStr == "" {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, valueStr)
}

// SetLeaderboardLastRefresh 记录一次排行榜刷新完成的时间。
func SetLeaderboardLastRefresh(db *gorm.DB, t time.Time) error {
	return SetValue(db, LeaderboardLastRefreshKey, t.Format(time.RFC3339))
}

// IsSeeded 判断种子数据是否已导入。
func IsSeeded(db *gorm.DB) (bool, error) {
	valueStr, err := GetValue(db, SchemaSeededKey)
	if err != nil {
		return false, err
	}
	return valueStr == "1", nil
}

// MarkSeeded 标记种子数据已导入。
func MarkSeeded(db *gorm.DB) error {
	return SetValue(db, SchemaSeededKey, "1")
}
