package nutrition

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/FitnessArc/fitness-arc-backend/pkg/timex"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type FoodResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	KcalPer100g    float64 `json:"kcalPer100g"`
	ProteinPer100g float64 `json:"proteinPer100g"`
	CarbsPer100g   float64 `json:"carbsPer100g"`
	FatPer100g     float64 `json:"fatPer100g"`
	IsPublic       bool    `json:"isPublic"`
}

type FoodLogResponse struct {
	ID       uint    `json:"id"`
	Date     string  `json:"date"`
	Food     string  `json:"food"`
	FoodID   uint    `json:"foodId"`
	Grams    float64 `json:"grams"`
	MealType string  `json:"mealType"`
	Kcal     float64 `json:"kcal"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type DayLogsResponse struct {
	Date   string            `json:"date"`
	Logs   []FoodLogResponse `json:"logs"`
	Totals struct {
		Kcal    float64 `json:"kcal"`
		Protein float64 `json:"protein"`
		Carbs   float64 `json:"carbs"`
		Fat     float64 `json:"fat"`
	} `json:"totals"`
}

func formatFood(f Food) FoodResponse {
	return FoodResponse{
		ID:             f.ID,
		Name:           f.Name,
		KcalPer100g:    f.KcalPer100g,
		ProteinPer100g: f.ProteinPer100g,
		CarbsPer100g:   f.CarbsPer100g,
		FatPer100g:     f.FatPer100g,
		IsPublic:       f.IsPublic,
	}
}

func formatLog(l *FoodLog) FoodLogResponse {
	return FoodLogResponse{
		ID:       l.ID,
		Date:     l.Date.Format("2006-01-02"),
		Food:     l.Food.Name,
		FoodID:   l.FoodID,
		Grams:    l.Grams,
		MealType: l.MealType,
		Kcal:     l.Kcal(),
		Protein:  l.Protein(),
		Carbs:    l.Carbs(),
		Fat:      l.Fat(),
	}
}

// --- 控制器函数 ---

// ListFoodsHandler 返回食物库，支持 ?search= 按名称筛选
func ListFoodsHandler(c *gin.Context) {
	foods, err := ListFoods(user.CurrentUserID(c), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询食物库失败"})
		return
	}
	responses := make([]FoodResponse, 0, len(foods))
	for _, f := range foods {
		responses = append(responses, formatFood(f))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateFoodRequestBody 定义创建自建食物的请求体
type CreateFoodRequestBody struct {
	Name           string  `json:"name" binding:"required"`
	KcalPer100g    float64 `json:"kcalPer100g"`
	ProteinPer100g float64 `json:"proteinPer100g"`
	CarbsPer100g   float64 `json:"carbsPer100g"`
	FatPer100g     float64 `json:"fatPer100g"`
}

// CreateFoodHandler 创建一种用户自建食物
func CreateFoodHandler(c *gin.Context) {
	var body CreateFoodRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	food, err := CreateFood(user.CurrentUserID(c), FoodInput{
		Name:           body.Name,
		KcalPer100g:    body.KcalPer100g,
		ProteinPer100g: body.ProteinPer100g,
		CarbsPer100g:   body.CarbsPer100g,
		FatPer100g:     body.FatPer100g,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, formatFood(*food))
}

// ListDayLogsHandler 返回某天的摄入记录，?date=YYYY-MM-DD，缺省为今天。
// 无效的日期参数静默回退到今天。
func ListDayLogsHandler(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			date = parsed
		}
	}

	logs, totals, err := ListDayLogs(user.CurrentUserID(c), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询摄入记录失败"})
		return
	}

	resp := DayLogsResponse{Date: timex.Day(date).Format("2006-01-02"), Logs: []FoodLogResponse{}}
	for i := range logs {
		resp.Logs = append(resp.Logs, formatLog(&logs[i]))
	}
	resp.Totals.Kcal = totals.Kcal
	resp.Totals.Protein = totals.Protein
	resp.Totals.Carbs = totals.Carbs
	resp.Totals.Fat = totals.Fat
	c.JSON(http.StatusOK, resp)
}

// AddLogRequestBody 定义记录摄入的请求体
type AddLogRequestBody struct {
	FoodID   uint    `json:"foodId" binding:"required"`
	Date     string  `json:"date"`
	Grams    float64 `json:"grams" binding:"required"`
	MealType string  `json:"mealType"`
}

// AddLogHandler 记录一次食物摄入
func AddLogHandler(c *gin.Context) {
	var body AddLogRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	date := time.Now()
	if body.Date != "" {
		if parsed, err := time.Parse("2006-01-02", body.Date); err == nil {
			date = parsed
		}
	}

	log, err := AddLog(user.CurrentUserID(c), LogInput{
		FoodID:   body.FoodID,
		Date:     date,
		Grams:    body.Grams,
		MealType: body.MealType,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, formatLog(log))
}

// DeleteLogHandler 删除一条摄入记录
func DeleteLogHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return
	}
	err = DeleteLog(user.CurrentUserID(c), uint(id))
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
