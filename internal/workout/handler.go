package workout

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// --- API响应模型 ---

type ExerciseResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	MuscleGroup string `json:"muscleGroup"`
	Equipment   string `json:"equipment"`
	Difficulty  int    `json:"difficulty"`
	Description string `json:"description"`
	IsTimeBased bool   `json:"isTimeBased"`
}

type TemplateItemResponse struct {
	ID          uint   `json:"id"`
	ExerciseID  uint   `json:"exerciseId"`
	Exercise    string `json:"exercise"`
	Order       int    `json:"order"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"restSeconds"`
	Notes       string `json:"notes"`
}

type TemplateResponse struct {
	ID    uint                   `json:"id"`
	Name  string                 `json:"name"`
	Items []TemplateItemResponse `json:"items"`
}

type SetLogResponse struct {
	ID              uint    `json:"id"`
	ExerciseID      uint    `json:"exerciseId"`
	Exercise        string  `json:"exercise"`
	SetNumber       int     `json:"setNumber"`
	Reps            *int    `json:"reps"`
	DurationSeconds *int    `json:"durationSeconds"`
	WeightKg        float64 `json:"weightKg"`
	Volume          float64 `json:"volume"`
}

type SessionResponse struct {
	ID              uint             `json:"id"`
	Date            string           `json:"date"`
	DurationMinutes int              `json:"durationMinutes"`
	IsCompleted     bool             `json:"isCompleted"`
	Notes           string           `json:"notes"`
	TotalVolume     float64          `json:"totalVolume"`
	Calories        float64          `json:"calories"`
	SetLogs         []SetLogResponse `json:"setLogs,omitempty"`
}

func formatExercise(e Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		MuscleGroup: e.MuscleGroup,
		Equipment:   e.Equipment,
		Difficulty:  e.Difficulty,
		Description: e.Description,
		IsTimeBased: e.IsTimeBased,
	}
}

func formatSession(s *WorkoutSession, withSets bool) SessionResponse {
	resp := SessionResponse{
		ID:              s.ID,
		Date:            s.Date.Format("2006-01-02"),
		DurationMinutes: s.DurationMinutes,
		IsCompleted:     s.IsCompleted,
		Notes:           s.Notes,
		TotalVolume:     s.TotalVolume(),
		Calories:        s.EstimatedCaloriesBurned(),
	}
	if withSets {
		for i := range s.SetLogs {
			log := &s.SetLogs[i]
			resp.SetLogs = append(resp.SetLogs, SetLogResponse{
				ID:              log.ID,
				ExerciseID:      log.ExerciseID,
				Exercise:        log.Exercise.Name,
				SetNumber:       log.SetNumber,
				Reps:            log.Reps,
				DurationSeconds: log.DurationSeconds,
				WeightKg:        log.WeightKg,
				Volume:          log.Volume(),
			})
		}
	}
	return resp
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的ID"})
		return 0, false
	}
	return uint(id), true
}

// --- 控制器函数 ---

// ListExercisesHandler 返回动作库，支持 ?muscle= 和 ?equip= 筛选
func ListExercisesHandler(c *gin.Context) {
	exercises, err := ListExercises(c.Query("muscle"), c.Query("equip"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询动作库失败"})
		return
	}
	responses := make([]ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		responses = append(responses, formatExercise(e))
	}
	c.JSON(http.StatusOK, responses)
}

// GetExerciseHandler 返回单个动作
func GetExerciseHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	exercise, err := GetExercise(id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "动作不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	c.JSON(http.StatusOK, formatExercise(*exercise))
}

// ListTemplatesHandler 返回当前用户的模板列表
func ListTemplatesHandler(c *gin.Context) {
	templates, err := ListTemplates(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询模板失败"})
		return
	}
	responses := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp := TemplateResponse{ID: t.ID, Name: t.Name}
		for _, item := range t.Items {
			resp.Items = append(resp.Items, TemplateItemResponse{
				ID:          item.ID,
				ExerciseID:  item.ExerciseID,
				Exercise:    item.Exercise.Name,
				Order:       item.Order,
				Sets:        item.Sets,
				Reps:        item.Reps,
				RestSeconds: item.RestSeconds,
				Notes:       item.Notes,
			})
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// CreateTemplateRequestBody 定义创建模板的请求体
type CreateTemplateRequestBody struct {
	Name  string `json:"name"`
	Items []struct {
		ExerciseID  uint   `json:"exerciseId" binding:"required"`
		Order       int    `json:"order"`
		Sets        int    `json:"sets"`
		Reps        int    `json:"reps"`
		RestSeconds int    `json:"restSeconds"`
		Notes       string `json:"notes"`
	} `json:"items"`
}

// CreateTemplateHandler 创建一个新模板
func CreateTemplateHandler(c *gin.Context) {
	var body CreateTemplateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	items := make([]TemplateItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, TemplateItemInput{
			ExerciseID:  item.ExerciseID,
			Order:       item.Order,
			Sets:        item.Sets,
			Reps:        item.Reps,
			RestSeconds: item.RestSeconds,
			Notes:       item.Notes,
		})
	}
	template, err := CreateTemplate(user.CurrentUserID(c), body.Name, items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建模板失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": template.ID, "name": template.Name})
}

// DeleteTemplateHandler 删除当前用户的一个模板
func DeleteTemplateHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	err := DeleteTemplate(user.CurrentUserID(c), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "模板不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除模板失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "模板已删除"})
}

// StartSessionHandler 从模板开始一次训练（模板可选）
func StartSessionHandler(c *gin.Context) {
	var body struct {
		TemplateID *uint `json:"templateId"`
	}
	// 空请求体也是合法的：不基于模板的自由训练
	_ = c.ShouldBindJSON(&body)

	session, err := StartSession(user.CurrentUserID(c), body.TemplateID, time.Now())
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "模板不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建训练失败"})
		return
	}
	c.JSON(http.StatusCreated, formatSession(session, false))
}

// ListSessionsHandler 返回当前用户最近的训练
func ListSessionsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	sessions, err := ListSessions(user.CurrentUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询训练失败"})
		return
	}
	responses := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, formatSession(&sessions[i], false))
	}
	c.JSON(http.StatusOK, responses)
}

// GetSessionHandler 返回一次训练的详情
func GetSessionHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	session, err := GetSession(user.CurrentUserID(c), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "训练不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "数据库查询失败"})
		return
	}
	c.JSON(http.StatusOK, formatSession(session, true))
}

// LogSetRequestBody 定义记录一组的请求体
type LogSetRequestBody struct {
	ExerciseID      uint    `json:"exerciseId" binding:"required"`
	SetNumber       int     `json:"setNumber" binding:"required"`
	Reps            *int    `json:"reps"`
	DurationSeconds *int    `json:"durationSeconds"`
	WeightKg        float64 `json:"weightKg"`
	RPE             *int    `json:"rpe"`
	Notes           string  `json:"notes"`
}

// LogSetHandler 在一次训练中记录一组
func LogSetHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var body LogSetRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	setLog, err := LogSet(user.CurrentUserID(c), id, SetInput{
		ExerciseID:      body.ExerciseID,
		SetNumber:       body.SetNumber,
		Reps:            body.Reps,
		DurationSeconds: body.DurationSeconds,
		WeightKg:        body.WeightKg,
		RPE:             body.RPE,
		Notes:           body.Notes,
	})
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "训练不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, SetLogResponse{
		ID:              setLog.ID,
		ExerciseID:      setLog.ExerciseID,
		Exercise:        setLog.Exercise.Name,
		SetNumber:       setLog.SetNumber,
		Reps:            setLog.Reps,
		DurationSeconds: setLog.DurationSeconds,
		WeightKg:        setLog.WeightKg,
		Volume:          setLog.Volume(),
	})
}

// CompleteSessionRequestBody 定义完成训练的请求体
type CompleteSessionRequestBody struct {
	DurationMinutes int `json:"durationMinutes" binding:"required"`
}

// CompleteSessionHandler 完成一次训练并刷新个人纪录
func CompleteSessionHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var body CompleteSessionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	session, err := CompleteSession(user.CurrentUserID(c), id, body.DurationMinutes)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "训练不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "完成训练失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, formatSession(session, true))
}

// DeleteSessionHandler 删除一次训练并重算受影响的个人纪录
func DeleteSessionHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	err := DeleteSession(user.CurrentUserID(c), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "训练不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除训练失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "训练已删除"})
}

// PRResponse 是个人纪录的响应结构
type PRResponse struct {
	ID       uint    `json:"id"`
	Exercise string  `json:"exercise"`
	Metric   string  `json:"metric"`
	Value    float64 `json:"value"`
	Date     string  `json:"date"`
}

// ListPRsHandler 返回当前用户的全部个人纪录
func ListPRsHandler(c *gin.Context) {
	prs, err := ListPRs(user.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询个人纪录失败"})
		return
	}
	responses := make([]PRResponse, 0, len(prs))
	for i := range prs {
		pr := &prs[i]
		responses = append(responses, PRResponse{
			ID:       pr.ID,
			Exercise: pr.Exercise.Name,
			Metric:   pr.Metric,
			Value:    pr.Value,
			Date:     pr.Date.Format("2006-01-02"),
		})
	}
	c.JSON(http.StatusOK, responses)
}
