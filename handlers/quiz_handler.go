package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"informativos-backend/models"
	"informativos-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuizHandler handles HTTP requests for quiz sessions
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuizRequest represents the request body for starting or regenerating a quiz.
// Count is capped at models.MaxQuizSize.
type CreateQuizRequest struct {
	Count int `json:"count"`
}

// SubmitAnswerRequest represents the request body for answering an assertion
type SubmitAnswerRequest struct {
	Answer *bool `json:"answer" binding:"required"`
}

// AssertionView is an assertion as shown to the user. The ground truth and
// explanation stay hidden until the assertion has been answered.
type AssertionView struct {
	Index         int    `json:"index"`
	Text          string `json:"text"`
	Answerable    bool   `json:"answerable"`
	UserAnswer    *bool  `json:"user_answer,omitempty"`
	CorrectAnswer *bool  `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizView is a quiz session as shown to the user
type QuizView struct {
	ID         uuid.UUID        `json:"id"`
	Assertions []AssertionView  `json:"assertions"`
	Score      models.QuizScore `json:"score"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewQuizView hides the answers of unanswered assertions
func NewQuizView(session *models.QuizSession) QuizView {
	view := QuizView{
		ID:         session.ID,
		Assertions: make([]AssertionView, len(session.Assertions)),
		Score:      session.Score(),
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
	}
	for i, a := range session.Assertions {
		av := AssertionView{
			Index:      i,
			Text:       a.Text,
			Answerable: a.Answerable(),
		}
		if answer, ok := session.Answers[i]; ok && a.Answerable() {
			userAnswer := answer
			correct := *a.Answer
			av.UserAnswer = &userAnswer
			av.CorrectAnswer = &correct
			av.Explanation = a.Explanation
		}
		view.Assertions[i] = av
	}
	return view
}

// CreateQuiz handles POST /api/quizzes
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}
	if !validCount(c, req.Count) {
		return
	}

	result, err := h.quizService.Create(c.Request.Context(), service.CreateQuizRequest{Count: req.Count})
	if err != nil {
		respondQuizError(c, err, "CREATE_FAILED")
		return
	}
	respondOK(c, http.StatusCreated, NewQuizView(result.Session))
}

// GetQuiz handles GET /api/quizzes/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	result, err := h.quizService.Get(c.Request.Context(), service.GetQuizRequest{ID: id})
	if err != nil {
		respondQuizError(c, err, "GET_FAILED")
		return
	}
	respondOK(c, http.StatusOK, NewQuizView(result.Session))
}

// RegenerateQuiz handles POST /api/quizzes/:id/regenerate
func (h *QuizHandler) RegenerateQuiz(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req CreateQuizRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}
	if !validCount(c, req.Count) {
		return
	}

	result, err := h.quizService.Regenerate(c.Request.Context(), service.RegenerateQuizRequest{
		ID:    id,
		Count: req.Count,
	})
	if err != nil {
		respondQuizError(c, err, "REGENERATE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, NewQuizView(result.Session))
}

// SubmitAnswer handles PUT /api/quizzes/:id/answers/:index
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INDEX", "Invalid index format")
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.quizService.SubmitAnswer(c.Request.Context(), service.SubmitAnswerRequest{
		ID:     id,
		Index:  index,
		Answer: *req.Answer,
	})
	if err != nil {
		respondQuizError(c, err, "SUBMIT_FAILED")
		return
	}
	respondOK(c, http.StatusOK, result)
}

// GetScore handles GET /api/quizzes/:id/score
func (h *QuizHandler) GetScore(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	score, err := h.quizService.Score(c.Request.Context(), service.ScoreRequest{ID: id})
	if err != nil {
		respondQuizError(c, err, "SCORE_FAILED")
		return
	}
	respondOK(c, http.StatusOK, score)
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid quiz id format")
		return uuid.Nil, false
	}
	return id, true
}

func validCount(c *gin.Context, count int) bool {
	if !service.ValidQuizSize(count) {
		respondError(c, http.StatusBadRequest, "INVALID_COUNT", service.ErrInvalidQuizSize.Error())
		return false
	}
	return true
}

func respondQuizError(c *gin.Context, err error, fallbackCode string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Quiz not found")
	case errors.Is(err, service.ErrAssertionNotFound):
		respondError(c, http.StatusNotFound, "ASSERTION_NOT_FOUND", "Assertion not found")
	case errors.Is(err, service.ErrInvalidQuizSize):
		respondError(c, http.StatusBadRequest, "INVALID_COUNT", err.Error())
	case errors.Is(err, service.ErrInformationalAssertion):
		respondError(c, http.StatusBadRequest, "NOT_ANSWERABLE", "Assertion cannot be answered")
	default:
		respondError(c, http.StatusInternalServerError, fallbackCode, err.Error())
	}
}
