package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"informativos-backend/models"
	"informativos-backend/repository"
	"informativos-backend/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizService(n int) *service.QuizService {
	records := make([]models.Informativo, n)
	for i := range records {
		resumo := fmt.Sprintf("O tribunal julgou o caso %d sobre o direito de greve", i)
		records[i] = models.Informativo{Informativo: 2000 + i, ClasseProcesso: "RE", Resumo: &resumo}
	}
	return service.NewQuizService(
		service.WithQuizSessionStore(repository.NewMemoryQuizSessionStore()),
		service.WithAssertionGenerator(service.NewSeededAssertionGenerator(3)),
		service.WithQuizInformativoRepository(repository.NewInformativoRepository(records)),
	)
}

func TestPlayQuiz_AnswersEveryAssertion(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("talvez\nV\nf\nverdadeiro\n")

	err := playQuiz(context.Background(), quizService(10), 3, in, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "Explicação: Informativo 20"))
	assert.Contains(t, text, "Pontuação: ")
	assert.Contains(t, text, "/3 (")
}

func TestPlayQuiz_SkipAndQuit(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("pula\nsair\n")

	err := playQuiz(context.Background(), quizService(10), 3, in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Pontuação: 0/0 (0%)")
	assert.NotContains(t, out.String(), "Assertiva 3")
}

func TestPlayQuiz_InsufficientData(t *testing.T) {
	var out bytes.Buffer

	err := playQuiz(context.Background(), quizService(2), 5, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), service.InsufficientDataText)
	assert.Contains(t, out.String(), "Pontuação: 0/0 (0%)")
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "Verdadeiro", verdict(true))
	assert.Equal(t, "Falso", verdict(false))
}
