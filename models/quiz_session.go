package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MaxQuizSize is the largest number of assertions a single quiz may ask for
const MaxQuizSize = 50

// Assertion represents a generated true/false study statement.
// A nil Answer marks an informational statement that cannot be answered.
type Assertion struct {
	Text        string `json:"text"`
	Answer      *bool  `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// Answerable reports whether the assertion carries a ground-truth answer
func (a Assertion) Answerable() bool {
	return a.Answer != nil
}

// Assertions represents the ordered assertion set of a quiz session
type Assertions []Assertion

// Value implements driver.Valuer for JSONB
func (a Assertions) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *Assertions) Scan(value interface{}) error {
	if value == nil {
		*a = make(Assertions, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*a = make(Assertions, 0)
		return nil
	}

	if len(bytes) == 0 {
		*a = make(Assertions, 0)
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// QuizAnswers maps an assertion index to the answer the user submitted
type QuizAnswers map[int]bool

// Value implements driver.Valuer for JSONB
func (q QuizAnswers) Value() (driver.Value, error) {
	return json.Marshal(q)
}

// Scan implements sql.Scanner for JSONB
func (q *QuizAnswers) Scan(value interface{}) error {
	if value == nil {
		*q = make(QuizAnswers)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*q = make(QuizAnswers)
		return nil
	}

	if len(bytes) == 0 {
		*q = make(QuizAnswers)
		return nil
	}

	return json.Unmarshal(bytes, q)
}

// QuizSession represents one user's quiz: the generated assertions and the answers submitted so far
type QuizSession struct {
	ID         uuid.UUID   `json:"id"`
	Assertions Assertions  `json:"assertions"`
	Answers    QuizAnswers `json:"answers"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// QuizScore represents the running score of a quiz session
type QuizScore struct {
	Correct  int     `json:"correct"`
	Answered int     `json:"answered"`
	Ratio    float64 `json:"ratio"`
}

// Score computes correct-count / answered-count over the submitted answers.
// Answers pointing at missing or informational assertions are ignored.
func (s *QuizSession) Score() QuizScore {
	var score QuizScore
	for i, answer := range s.Answers {
		if i < 0 || i >= len(s.Assertions) || !s.Assertions[i].Answerable() {
			continue
		}
		score.Answered++
		if *s.Assertions[i].Answer == answer {
			score.Correct++
		}
	}
	if score.Answered > 0 {
		score.Ratio = float64(score.Correct) / float64(score.Answered)
	}
	return score
}
