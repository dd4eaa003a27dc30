package user

import (
	"time"

	"gorm.io/gorm"
)

// 档案字段的合法取值，与前端表单保持一致。
const (
	GoalBulk     = "bulk"
	GoalCut      = "cut"
	GoalMaintain = "maintain"

	RunningSourceManual = "manual"
	RunningSourceStrava = "strava"
	RunningSourceGarmin = "garmin"
)

// User 定义了用户在SQLite数据库中的持久化模型。
// 身份来自客户端Cookie中的UUID，档案字段供营养/跑步/仪表盘模块使用。
type User struct {
	// UUID 是用户的主键，来自客户端Cookie。
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// WeightKg 是用户体重（千克）。未设置时跑步卡路里估算使用默认值。
	WeightKg *float64

	// HeightCm 是用户身高（厘米）。
	HeightCm *int

	// Sex 是用户性别（"M" / "F"，可为空）。
	Sex string `gorm:"type:varchar(1)"`

	// Goal 是用户的训练目标：bulk / cut / maintain。
	Goal string `gorm:"type:varchar(8);default:maintain"`

	// RunningDataSource 决定跑步数据的录入方式，目前只有manual可用。
	RunningDataSource string `gorm:"type:varchar(10);default:manual"`

	// 部分gorm.Model，由GORM自动管理
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
