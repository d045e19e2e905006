package handlers

import (
	"net/http"

	"informativos-backend/metrics"

	"github.com/gin-gonic/gin"
)

// Router bundles the handlers mounted by NewRouter
type Router struct {
	Informativos *InformativoHandler
	Quizzes      *QuizHandler
	Questions    *QuestionHandler
}

// NewRouter builds the gin engine with every API route
func NewRouter(h Router) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		// Dataset endpoints
		api.GET("/informativos", h.Informativos.ListInformativos)
		api.GET("/informativos/:index", h.Informativos.GetInformativo)
		api.GET("/filters", h.Informativos.GetFilterOptions)
		api.GET("/stats", h.Informativos.GetStats)

		// Question endpoint
		api.POST("/questions", h.Questions.AskQuestion)

		// Quiz endpoints
		api.POST("/quizzes", h.Quizzes.CreateQuiz)
		api.GET("/quizzes/:id", h.Quizzes.GetQuiz)
		api.POST("/quizzes/:id/regenerate", h.Quizzes.RegenerateQuiz)
		api.PUT("/quizzes/:id/answers/:index", h.Quizzes.SubmitAnswer)
		api.GET("/quizzes/:id/score", h.Quizzes.GetScore)
	}

	return r
}
