package api

import (
	"github.com/FitnessArc/fitness-arc-backend/internal/dashboard"
	"github.com/FitnessArc/fitness-arc-backend/internal/leaderboard"
	"github.com/FitnessArc/fitness-arc-backend/internal/nutrition"
	"github.com/FitnessArc/fitness-arc-backend/internal/running"
	"github.com/FitnessArc/fitness-arc-backend/internal/user"
	"github.com/FitnessArc/fitness-arc-backend/internal/workout"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由。
// 读路由用EnsureUserCookieMiddleware为新访客发放cookie；
// 写路由用LoadUserMiddleware要求cookie必须已存在且合法。
func SetupRoutes(router *gin.Engine) {
	ensure := user.EnsureUserCookieMiddleware()
	load := user.LoadUserMiddleware()

	api := router.Group("/api")
	{
		// 仪表盘
		api.GET("/dashboard", ensure, dashboard.GetDashboardHandler)

		// 用户档案
		api.GET("/profile", ensure, user.GetProfileHandler)
		api.PUT("/profile", load, user.UpdateProfileHandler)

		// 训练相关的路由组
		workouts := api.Group("/workouts")
		{
			workouts.GET("/exercises", workout.ListExercisesHandler)
			workouts.GET("/exercises/:id", workout.GetExerciseHandler)

			workouts.GET("/templates", ensure, workout.ListTemplatesHandler)
			workouts.POST("/templates", load, workout.CreateTemplateHandler)
			workouts.DELETE("/templates/:id", load, workout.DeleteTemplateHandler)

			workouts.GET("/sessions", ensure, workout.ListSessionsHandler)
			workouts.POST("/sessions", load, workout.StartSessionHandler)
			workouts.GET("/sessions/:id", load, workout.GetSessionHandler)
			workouts.POST("/sessions/:id/sets", load, workout.LogSetHandler)
			workouts.POST("/sessions/:id/complete", load, workout.CompleteSessionHandler)
			workouts.DELETE("/sessions/:id", load, workout.DeleteSessionHandler)

			workouts.GET("/prs", ensure, workout.ListPRsHandler)
		}

		// 营养相关的路由组
		foods := api.Group("/nutrition")
		{
			foods.GET("/foods", ensure, nutrition.ListFoodsHandler)
			foods.POST("/foods", load, nutrition.CreateFoodHandler)
			foods.GET("/logs", ensure, nutrition.ListDayLogsHandler)
			foods.POST("/logs", load, nutrition.AddLogHandler)
			foods.DELETE("/logs/:id", load, nutrition.DeleteLogHandler)
		}

		// 跑步相关的路由组
		runs := api.Group("/runs")
		{
			runs.GET("", ensure, running.ListRunsHandler)
			runs.POST("", load, running.AddRunHandler)
			runs.DELETE("/:id", load, running.DeleteRunHandler)
		}

		// 排行榜
		api.GET("/leaderboard", ensure, leaderboard.GetLeaderboardHandler)
		api.GET("/leaderboard/me", ensure, leaderboard.GetMyStatsHandler)
	}
}
