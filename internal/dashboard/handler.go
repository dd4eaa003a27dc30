package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// GetDashboardHandler 返回当前用户的仪表盘。
// ?year=&month= 控制日历显示的月份，非法值静默回退到当前月。
func GetDashboardHandler(c *gin.Context) {
	today := time.Now()
	refDate := today

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr != "" && monthStr != "" {
		year, yErr := strconv.Atoi(yearStr)
		month, mErr := strconv.Atoi(monthStr)
		if yErr == nil && mErr == nil && year >= 2000 && year <= 2100 && month >= 1 && month <= 12 {
			refDate = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, today.Location())
		}
	}

	data, err := GetDashboard(user.CurrentUserID(c), today, refDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "仪表盘构建失败"})
		return
	}
	c.JSON(http.StatusOK, data)
}
