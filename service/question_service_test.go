package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"informativos-backend/models"
	"informativos-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func newQuestionService(records []models.Informativo, opts ...QuestionServiceOption) *QuestionService {
	base := []QuestionServiceOption{
		WithQuestionInformativoRepository(repository.NewInformativoRepository(records)),
		WithAskDelay(0),
	}
	return NewQuestionService(append(base, opts...)...)
}

func TestQuestionService_EmptyQuestion(t *testing.T) {
	svc := newQuestionService(summarizedRecords(3))

	_, err := svc.Ask(context.Background(), AskRequest{Question: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestQuestionService_KeywordAnswer(t *testing.T) {
	svc := newQuestionService(summarizedRecords(5))

	result, err := svc.Ask(context.Background(), AskRequest{Question: "direito de greve"})
	require.NoError(t, err)
	assert.Equal(t, SourceKeyword, result.Source)
	assert.Len(t, result.Matches, DefaultSearchLimit)
	assert.Equal(t, SynthesizeAnswer(MatchedInformativos(result.Matches)), result.Answer)
}

func TestQuestionService_NoMatches(t *testing.T) {
	gen := &fakeGenerator{answer: "não deveria ser usado"}
	svc := newQuestionService(summarizedRecords(5), WithTextGenerator(gen))

	result, err := svc.Ask(context.Background(), AskRequest{Question: "extradição"})
	require.NoError(t, err)
	assert.Equal(t, NotFoundAnswer, result.Answer)
	assert.Equal(t, SourceKeyword, result.Source)
	assert.Empty(t, result.Matches)
	assert.Empty(t, gen.prompt)
}

func TestQuestionService_GeminiAnswer(t *testing.T) {
	gen := &fakeGenerator{answer: "Segundo o Informativo 1000, a greve é permitida."}
	svc := newQuestionService(summarizedRecords(5), WithTextGenerator(gen), WithSearchLimit(1))

	result, err := svc.Ask(context.Background(), AskRequest{Question: "greve"})
	require.NoError(t, err)
	assert.Equal(t, SourceGemini, result.Source)
	assert.Equal(t, gen.answer, result.Answer)
	require.Len(t, result.Matches, 1)
	assert.Contains(t, gen.prompt, "Pergunta: greve")
}

func TestQuestionService_GeminiFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newQuestionService(summarizedRecords(5), WithTextGenerator(gen))

	result, err := svc.Ask(context.Background(), AskRequest{Question: "greve"})
	require.NoError(t, err)
	assert.Equal(t, SourceKeyword, result.Source)
	assert.Contains(t, result.Answer, "Com base nos informativos do STF")
}

func TestQuestionService_DelayHonoursContext(t *testing.T) {
	svc := newQuestionService(summarizedRecords(5), WithAskDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ask(ctx, AskRequest{Question: "greve"})
	assert.ErrorIs(t, err, context.Canceled)
}
