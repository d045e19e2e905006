package service

import (
	"fmt"
	"strings"

	"informativos-backend/models"
)

// Display fallbacks for null fields
const (
	FallbackDate   = "data não especificada"
	FallbackTitulo = "Título não disponível"
)

// NotFoundAnswer is returned when no record matches a question
const NotFoundAnswer = "Não encontrei informações específicas sobre essa pergunta nos informativos do STF entre 2021 e 2025."

const (
	answerPreamble  = "Com base nos informativos do STF, posso informar que:\n\n"
	answerDivider   = "---\n\n"
	contextPreamble = "Contexto dos informativos do STF:\n\n"
)

// SynthesizeAnswer concatenates the matched records into a readable answer
func SynthesizeAnswer(records []models.Informativo) string {
	if len(records) == 0 {
		return NotFoundAnswer
	}

	var b strings.Builder
	b.WriteString(answerPreamble)

	for i, rec := range records {
		fmt.Fprintf(&b, "**Informativo %d (%s)**: %s\n\n",
			rec.Informativo,
			rec.FormattedDate(FallbackDate),
			models.ValueOr(rec.Titulo, FallbackTitulo),
		)

		if rec.Resumo != nil {
			fmt.Fprintf(&b, "%s\n\n", *rec.Resumo)
		} else if rec.TeseJulgado != nil {
			fmt.Fprintf(&b, "**Tese**: %s\n\n", *rec.TeseJulgado)
		}

		if i < len(records)-1 {
			b.WriteString(answerDivider)
		}
	}

	return b.String()
}

// BuildContext renders the matched records as prompt context for a language
// model. Unlike SynthesizeAnswer it carries both summary and thesis.
func BuildContext(records []models.Informativo) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(contextPreamble)

	for _, rec := range records {
		fmt.Fprintf(&b, "Informativo %d (%s): %s\n",
			rec.Informativo,
			rec.FormattedDate(FallbackDate),
			models.ValueOr(rec.Titulo, FallbackTitulo),
		)
		if rec.Resumo != nil {
			fmt.Fprintf(&b, "Resumo: %s\n", *rec.Resumo)
		}
		if rec.TeseJulgado != nil {
			fmt.Fprintf(&b, "Tese: %s\n", *rec.TeseJulgado)
		}
		b.WriteString("\n")
	}

	return b.String()
}
