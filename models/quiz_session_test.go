package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestQuizSession_Score(t *testing.T) {
	session := QuizSession{
		Assertions: Assertions{
			{Text: "a", Answer: boolPtr(true)},
			{Text: "b", Answer: boolPtr(false)},
			{Text: "informational"},
			{Text: "d", Answer: boolPtr(true)},
		},
		Answers: QuizAnswers{
			0: true,  // correct
			1: true,  // wrong
			2: true,  // informational, ignored
			3: true,  // correct
			9: false, // out of range, ignored
		},
	}

	score := session.Score()
	assert.Equal(t, 2, score.Correct)
	assert.Equal(t, 3, score.Answered)
	assert.InDelta(t, 2.0/3.0, score.Ratio, 1e-9)
}

func TestQuizSession_ScoreNothingAnswered(t *testing.T) {
	session := QuizSession{Assertions: Assertions{{Text: "a", Answer: boolPtr(true)}}}
	assert.Equal(t, QuizScore{}, session.Score())
}

func TestQuizAnswers_JSONB(t *testing.T) {
	answers := QuizAnswers{0: true, 4: false}

	raw, err := answers.Value()
	require.NoError(t, err)

	var scanned QuizAnswers
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, answers, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.NotNil(t, scanned)
	assert.Empty(t, scanned)
}

func TestAssertions_ScanKeepsNullAnswer(t *testing.T) {
	var a Assertions
	require.NoError(t, a.Scan(`[{"text":"x","answer":null},{"text":"y","answer":true}]`))
	require.Len(t, a, 2)
	assert.False(t, a[0].Answerable())
	assert.True(t, a[1].Answerable())
}

func TestInformativo_Display(t *testing.T) {
	d := time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC)
	rec := Informativo{DataJulgamento: &d}
	assert.Equal(t, "05/06/2023", rec.FormattedDate("?"))
	assert.Equal(t, 2023, rec.Year())

	empty := Informativo{}
	assert.Equal(t, "?", empty.FormattedDate("?"))
	assert.Equal(t, 0, empty.Year())

	assert.Equal(t, "", Value(nil))
	assert.Equal(t, "fallback", ValueOr(nil, "fallback"))
}
