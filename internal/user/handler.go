package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProfileResponse 是档案API的响应结构
type ProfileResponse struct {
	UUID              string   `json:"uuid"`
	WeightKg          *float64 `json:"weightKg"`
	HeightCm          *int     `json:"heightCm"`
	Sex               string   `json:"sex"`
	Goal              string   `json:"goal"`
	RunningDataSource string   `json:"runningDataSource"`
}

// UpdateProfileRequestBody 定义了更新档案时请求体的JSON结构
// 所有字段都是可选的，缺省字段保持原值。
type UpdateProfileRequestBody struct {
	WeightKg          *float64 `json:"weightKg"`
	HeightCm          *int     `json:"heightCm"`
	Sex               *string  `json:"sex"`
	Goal              *string  `json:"goal"`
	RunningDataSource *string  `json:"runningDataSource"`
}

func formatProfile(u *User) ProfileResponse {
	return ProfileResponse{
		UUID:              u.UUID,
		WeightKg:          u.WeightKg,
		HeightCm:          u.HeightCm,
		Sex:               u.Sex,
		Goal:              u.Goal,
		RunningDataSource: u.RunningDataSource,
	}
}

// GetProfileHandler 返回当前用户的档案
func GetProfileHandler(c *gin.Context) {
	userID := CurrentUserID(c)
	profile, err := GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法读取用户档案"})
		return
	}
	c.JSON(http.StatusOK, formatProfile(profile))
}

// UpdateProfileHandler 更新当前用户的档案
func UpdateProfileHandler(c *gin.Context) {
	var body UpdateProfileRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	userID := CurrentUserID(c)
	profile, err := UpdateProfile(userID, ProfileUpdate{
		WeightKg:          body.WeightKg,
		HeightCm:          body.HeightCm,
		Sex:               body.Sex,
		Goal:              body.Goal,
		RunningDataSource: body.RunningDataSource,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, formatProfile(profile))
}
