package service

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"informativos-backend/models"
)

// MinSummarizedRecords is the smallest pool of summarized records a quiz can be drawn from
const MinSummarizedRecords = 5

// InsufficientDataText is the informational placeholder returned for a too small pool
const InsufficientDataText = "Não há dados suficientes para gerar assertivas."

const (
	excerptWords    = 15
	orgaoPlenario   = "Plenário"
	fallbackExcerpt = "o tema foi objeto de análise pelo tribunal"
	excerptEllipsis = "..."
)

// assertionTemplates are the statement shapes; placeholders are filled verbatim
var assertionTemplates = []string{
	"O STF decidiu que {tese}.",
	"De acordo com o informativo {informativo}, {resumo_parcial}.",
	"No julgamento de {classe} em {data}, o STF entendeu que {resumo_parcial}.",
	"É correto afirmar que, segundo o STF, {tese}.",
	"O {orgao} do STF, ao julgar {classe} em {data}, firmou entendimento de que {resumo_parcial}.",
}

// Mutation turns a true statement fragment into a false one
type Mutation func(string) string

// Mutations is the fixed, ordered rule set used for false assertions
var Mutations = []Mutation{
	Negate,
	SwapPode,
	SwapConstitucional,
	SwapDireitoDever,
}

// Negate prefixes "Não " and lowercases the first letter
func Negate(t string) string {
	if t == "" {
		return t
	}
	r, size := utf8.DecodeRuneInString(t)
	return "Não " + string(unicode.ToLower(r)) + t[size:]
}

// SwapPode turns "pode" into "não pode", or the reverse when "pode" is absent.
// Since "não pode" contains "pode", the first branch always wins when either occurs.
func SwapPode(t string) string {
	if strings.Contains(t, "pode") {
		return strings.ReplaceAll(t, "pode", "não pode")
	}
	return strings.ReplaceAll(t, "não pode", "pode")
}

// SwapConstitucional turns "constitucional" into "inconstitucional", or the
// reverse when absent. "inconstitucional" also contains "constitucional", so
// it becomes "ininconstitucional"; this matches the historical behaviour.
func SwapConstitucional(t string) string {
	if strings.Contains(t, "constitucional") {
		return strings.ReplaceAll(t, "constitucional", "inconstitucional")
	}
	return strings.ReplaceAll(t, "inconstitucional", "constitucional")
}

// SwapDireitoDever exchanges "direito" for "dever", or the reverse when absent
func SwapDireitoDever(t string) string {
	if strings.Contains(t, "direito") {
		return strings.ReplaceAll(t, "direito", "dever")
	}
	return strings.ReplaceAll(t, "dever", "direito")
}

// Excerpt returns the first fifteen words of text followed by an ellipsis,
// or text unchanged when it is short enough.
func Excerpt(text string) string {
	words := strings.Fields(text)
	if len(words) > excerptWords {
		return strings.Join(words[:excerptWords], " ") + excerptEllipsis
	}
	return text
}

// AssertionGenerator builds true/false statements from record text.
// It is safe for concurrent use.
type AssertionGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAssertionGenerator creates a generator drawing from rng
func NewAssertionGenerator(rng *rand.Rand) *AssertionGenerator {
	return &AssertionGenerator{rng: rng}
}

// NewSeededAssertionGenerator creates a generator with a reproducible sequence
func NewSeededAssertionGenerator(seed int64) *AssertionGenerator {
	return NewAssertionGenerator(rand.New(rand.NewSource(seed)))
}

// Generate produces count assertions from records with a summary. The working
// set is a random sample of min(2*count, pool) records, of which the first
// count are used. A pool smaller than MinSummarizedRecords yields a single
// informational assertion with no answer.
func (g *AssertionGenerator) Generate(records []models.Informativo, count int) models.Assertions {
	pool := make([]models.Informativo, 0, len(records))
	for _, rec := range records {
		if rec.Resumo != nil {
			pool = append(pool, rec)
		}
	}

	if len(pool) < MinSummarizedRecords {
		return models.Assertions{{Text: InsufficientDataText}}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if count < 0 {
		count = 0
	}
	sampleSize := len(pool)
	if count < sampleSize {
		sampleSize = min(2*count, sampleSize)
	}
	sample := g.rng.Perm(len(pool))[:sampleSize]

	assertions := make(models.Assertions, 0, min(count, sampleSize))
	for i, idx := range sample {
		if i >= count {
			break
		}
		assertions = append(assertions, g.build(pool[idx]))
	}
	return assertions
}

func (g *AssertionGenerator) build(rec models.Informativo) models.Assertion {
	excerpt := fallbackExcerpt
	if rec.Resumo != nil {
		excerpt = Excerpt(*rec.Resumo)
	}
	tese := models.ValueOr(rec.TeseJulgado, excerpt)

	truthful := g.rng.Intn(2) == 0
	template := assertionTemplates[g.rng.Intn(len(assertionTemplates))]

	statementTese, statementExcerpt := tese, excerpt
	if !truthful {
		mutate := Mutations[g.rng.Intn(len(Mutations))]
		statementTese = mutate(tese)
		statementExcerpt = mutate(excerpt)
	}

	number := strconv.Itoa(rec.Informativo)
	text := strings.NewReplacer(
		"{tese}", statementTese,
		"{informativo}", number,
		"{resumo_parcial}", statementExcerpt,
		"{classe}", rec.ClasseProcesso,
		"{data}", rec.FormattedDate(FallbackDate),
		"{orgao}", orgaoPlenario,
	).Replace(template)

	answer := truthful
	return models.Assertion{
		Text:        text,
		Answer:      &answer,
		Explanation: "Informativo " + number + ": " + excerpt,
	}
}
