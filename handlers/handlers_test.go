package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"informativos-backend/models"
	"informativos-backend/repository"
	"informativos-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func str(s string) *string {
	return &s
}

func fixtureRecords(n int) []models.Informativo {
	records := make([]models.Informativo, n)
	for i := range records {
		d := time.Date(2022, time.March, 1+i, 0, 0, 0, 0, time.UTC)
		records[i] = models.Informativo{
			Informativo:    1000 + i,
			DataJulgamento: &d,
			ClasseProcesso: "ADI",
			RamoDireito:    str("Direito Constitucional"),
			Titulo:         str(fmt.Sprintf("Greve no serviço público %d", i)),
			Resumo:         str(fmt.Sprintf("O direito de greve dos servidores %d pode ser limitado", i)),
		}
	}
	return records
}

func setupTestRouter(records []models.Informativo) *gin.Engine {
	repo := repository.NewInformativoRepository(records)
	return NewRouter(Router{
		Informativos: NewInformativoHandler(
			service.NewInformativoService(service.WithInformativoRepository(repo)),
			service.NewStatsService(service.WithStatsInformativoRepository(repo)),
		),
		Quizzes: NewQuizHandler(service.NewQuizService(
			service.WithQuizSessionStore(repository.NewMemoryQuizSessionStore()),
			service.WithAssertionGenerator(service.NewSeededAssertionGenerator(5)),
			service.WithQuizInformativoRepository(repo),
		)),
		Questions: NewQuestionHandler(service.NewQuestionService(
			service.WithQuestionInformativoRepository(repo),
			service.WithAskDelay(0),
		)),
	})
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	r := setupTestRouter(fixtureRecords(1))

	w, _ := doRequest(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupTestRouter(fixtureRecords(1))
	doRequest(t, r, http.MethodGet, "/health", nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "informativos_http_requests_total")
}

func TestListInformativos(t *testing.T) {
	r := setupTestRouter(fixtureRecords(8))

	w, env := doRequest(t, r, http.MethodGet, "/api/informativos?informativo=1003", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var list service.ListResult
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 8, list.Total)
	assert.Equal(t, 1003, list.Informativos[0].Informativo)
}

func TestListInformativos_DateRangeAndSentinel(t *testing.T) {
	r := setupTestRouter(fixtureRecords(8))

	w, env := doRequest(t, r, http.MethodGet, "/api/informativos?informativo=Todos&ramo=Todos&from=02/03/2022&to=2022-03-04", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list service.ListResult
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 3, list.Count)
}

func TestListInformativos_Cards(t *testing.T) {
	r := setupTestRouter(fixtureRecords(8))

	w, env := doRequest(t, r, http.MethodGet, "/api/informativos?view=cards&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cards service.CardsResult
	require.NoError(t, json.Unmarshal(env.Data, &cards))
	assert.Equal(t, 2, cards.Page)
	assert.Equal(t, 2, cards.Pages)
	require.Len(t, cards.Informativos, 3)
	// newest first: page two holds the three oldest records
	assert.Equal(t, 1002, cards.Informativos[0].Informativo)
	assert.Equal(t, 1000, cards.Informativos[2].Informativo)
}

func TestListInformativos_BadParams(t *testing.T) {
	r := setupTestRouter(fixtureRecords(2))

	for _, path := range []string{
		"/api/informativos?informativo=abc",
		"/api/informativos?from=ontem",
		"/api/informativos?view=cards&page=x",
	} {
		w, env := doRequest(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.False(t, env.Success)
	}
}

func TestGetInformativo(t *testing.T) {
	r := setupTestRouter(fixtureRecords(3))

	w, env := doRequest(t, r, http.MethodGet, "/api/informativos/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rec models.Informativo
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	assert.Equal(t, 1002, rec.Informativo)

	w, env = doRequest(t, r, http.MethodGet, "/api/informativos/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/api/informativos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFiltersAndStats(t *testing.T) {
	r := setupTestRouter(fixtureRecords(4))

	w, env := doRequest(t, r, http.MethodGet, "/api/filters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var opts models.FilterOptions
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	assert.Equal(t, []int{1000, 1001, 1002, 1003}, opts.Informativos)
	assert.Equal(t, []string{"ADI"}, opts.ClassesProcesso)

	w, env = doRequest(t, r, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, []models.Bucket{{Label: "2022", Count: 4}}, stats.PorAno)
}

func TestAskQuestion(t *testing.T) {
	r := setupTestRouter(fixtureRecords(5))

	w, env := doRequest(t, r, http.MethodPost, "/api/questions", AskQuestionRequest{Question: "greve servidores"})
	require.Equal(t, http.StatusOK, w.Code)

	var result service.AskResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, service.SourceKeyword, result.Source)
	assert.Len(t, result.Matches, 3)
	assert.Contains(t, result.Answer, "Com base nos informativos do STF")

	w, env = doRequest(t, r, http.MethodPost, "/api/questions", AskQuestionRequest{Question: "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_QUESTION", env.Error.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/questions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuizLifecycle(t *testing.T) {
	r := setupTestRouter(fixtureRecords(12))

	w, env := doRequest(t, r, http.MethodPost, "/api/quizzes", CreateQuizRequest{Count: 3})
	require.Equal(t, http.StatusCreated, w.Code)

	var quiz QuizView
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	require.Len(t, quiz.Assertions, 3)
	for _, a := range quiz.Assertions {
		assert.True(t, a.Answerable)
		assert.Nil(t, a.CorrectAnswer, "ground truth hidden before answering")
		assert.Empty(t, a.Explanation)
	}

	base := "/api/quizzes/" + quiz.ID.String()

	w, env = doRequest(t, r, http.MethodPut, base+"/answers/0", map[string]bool{"answer": true})
	require.Equal(t, http.StatusOK, w.Code)
	var feedback service.SubmitAnswerResult
	require.NoError(t, json.Unmarshal(env.Data, &feedback))
	assert.Equal(t, feedback.CorrectAnswer, feedback.Correct)
	assert.NotEmpty(t, feedback.Explanation)

	w, env = doRequest(t, r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	require.NotNil(t, quiz.Assertions[0].CorrectAnswer)
	assert.Equal(t, feedback.CorrectAnswer, *quiz.Assertions[0].CorrectAnswer)
	assert.Nil(t, quiz.Assertions[1].CorrectAnswer)
	assert.Equal(t, 1, quiz.Score.Answered)

	w, env = doRequest(t, r, http.MethodGet, base+"/score", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var score models.QuizScore
	require.NoError(t, json.Unmarshal(env.Data, &score))
	assert.Equal(t, 1, score.Answered)

	w, env = doRequest(t, r, http.MethodPost, base+"/regenerate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	assert.Len(t, quiz.Assertions, 3)
	assert.Equal(t, 0, quiz.Score.Answered)
}

func TestQuizErrors(t *testing.T) {
	r := setupTestRouter(fixtureRecords(12))

	w, env := doRequest(t, r, http.MethodPost, "/api/quizzes", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var quiz QuizView
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	assert.Len(t, quiz.Assertions, service.DefaultQuizSize)
	base := "/api/quizzes/" + quiz.ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"bad id", http.MethodGet, "/api/quizzes/not-a-uuid", nil, http.StatusBadRequest, "INVALID_ID"},
		{"unknown id", http.MethodGet, "/api/quizzes/3f2b8c1e-0000-4000-8000-000000000000", nil, http.StatusNotFound, "NOT_FOUND"},
		{"index out of range", http.MethodPut, base + "/answers/5", map[string]bool{"answer": true}, http.StatusNotFound, "ASSERTION_NOT_FOUND"},
		{"bad index", http.MethodPut, base + "/answers/x", map[string]bool{"answer": true}, http.StatusBadRequest, "INVALID_INDEX"},
		{"missing answer", http.MethodPut, base + "/answers/0", map[string]string{}, http.StatusBadRequest, "INVALID_REQUEST"},
		{"negative count", http.MethodPost, "/api/quizzes", CreateQuizRequest{Count: -1}, http.StatusBadRequest, "INVALID_COUNT"},
		{"count above max", http.MethodPost, "/api/quizzes", CreateQuizRequest{Count: models.MaxQuizSize + 1}, http.StatusBadRequest, "INVALID_COUNT"},
		{"huge count", http.MethodPost, "/api/quizzes", CreateQuizRequest{Count: 1 << 40}, http.StatusBadRequest, "INVALID_COUNT"},
		{"max int count", http.MethodPost, "/api/quizzes", CreateQuizRequest{Count: math.MaxInt}, http.StatusBadRequest, "INVALID_COUNT"},
		{"regenerate huge count", http.MethodPost, base + "/regenerate", CreateQuizRequest{Count: 1 << 40}, http.StatusBadRequest, "INVALID_COUNT"},
		{"regenerate negative count", http.MethodPost, base + "/regenerate", CreateQuizRequest{Count: -2}, http.StatusBadRequest, "INVALID_COUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doRequest(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestQuizInformationalAssertion(t *testing.T) {
	r := setupTestRouter(fixtureRecords(2))

	w, env := doRequest(t, r, http.MethodPost, "/api/quizzes", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var quiz QuizView
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	require.Len(t, quiz.Assertions, 1)
	assert.False(t, quiz.Assertions[0].Answerable)

	w, env = doRequest(t, r, http.MethodPut, "/api/quizzes/"+quiz.ID.String()+"/answers/0", map[string]bool{"answer": false})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NOT_ANSWERABLE", env.Error.Code)
}

func TestCreateQuiz_MaxCountUsesWholePool(t *testing.T) {
	r := setupTestRouter(fixtureRecords(6))

	w, env := doRequest(t, r, http.MethodPost, "/api/quizzes", CreateQuizRequest{Count: models.MaxQuizSize})
	require.Equal(t, http.StatusCreated, w.Code)
	var quiz QuizView
	require.NoError(t, json.Unmarshal(env.Data, &quiz))
	assert.Len(t, quiz.Assertions, 6)
}
