package running

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// RunResponse 是跑步记录API的响应结构
type RunResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	StartDate      string   `json:"startDate"`
	DistanceKm     float64  `json:"distanceKm"`
	MovingTime     string   `json:"movingTime"`
	Pace           string   `json:"pace"`
	CaloriesBurned *float64 `json:"caloriesBurned"`
	Source         string   `json:"source"`
}

func formatRun(r *Run) RunResponse {
	return RunResponse{
		ID:             r.ID,
		Name:           r.Name,
		StartDate:      r.StartDate.Format(time.RFC3339),
		DistanceKm:     r.DistanceKm(),
		MovingTime:     r.MovingTimeHMS(),
		Pace:           r.PaceMinPerKm(),
		CaloriesBurned: r.CaloriesBurned,
		Source:         r.Source,
	}
}

// ListRunsHandler 返回当前用户的跑步记录
func ListRunsHandler(c *gin.Context) {
	runs, err := ListRuns(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询跑步记录失败"})
		return
	}
	responses := make([]RunResponse, 0, len(runs))
	for i := range runs {
		responses = append(responses, formatRun(&runs[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// AddRunRequestBody 定义手动录入跑步的请求体
type AddRunRequestBody struct {
	Name           string   `json:"name"`
	StartDate      string   `json:"startDate"`
	DistanceM      float64  `json:"distanceM" binding:"required"`
	MovingTimeS    int      `json:"movingTimeS" binding:"required"`
	CaloriesBurned *float64 `json:"caloriesBurned"`
}

// AddRunHandler 手动录入一次跑步
func AddRunHandler(c *gin.Context) {
	var body AddRunRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	startDate := time.Now()
	if body.StartDate != "" {
		if parsed, err := time.Parse(time.RFC3339, body.StartDate); err == nil {
			startDate = parsed
		}
	}

	run, err := AddManualRun(user.CurrentUserID(c), RunInput{
		Name:           body.Name,
		StartDate:      startDate,
		DistanceM:      body.DistanceM,
		MovingTimeS:    body.MovingTimeS,
		CaloriesBurned: body.CaloriesBurned,
	})
	if errors.Is(err, ErrManualDisabled) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, formatRun(run))
}

// DeleteRunHandler 删除一次跑步记录
func DeleteRunHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}
	err = DeleteRun(user.CurrentUserID(c), uint(id))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "记录不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "记录已删除"})
}
