package handlers

import (
	"errors"
	"net/http"

	"informativos-backend/service"

	"github.com/gin-gonic/gin"
)

// QuestionHandler handles free-text questions about the dataset
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// AskQuestionRequest represents the request body for a question
type AskQuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

// AskQuestion handles POST /api/questions
func (h *QuestionHandler) AskQuestion(c *gin.Context) {
	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.questionService.Ask(c.Request.Context(), service.AskRequest{Question: req.Question})
	if errors.Is(err, service.ErrEmptyQuestion) {
		respondError(c, http.StatusBadRequest, "EMPTY_QUESTION", "Question must not be blank")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ASK_FAILED", err.Error())
		return
	}
	respondOK(c, http.StatusOK, result)
}
