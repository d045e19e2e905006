package models

import (
	"time"
)

// DateLayout is the day/month/year layout used by the dataset and every display string
const DateLayout = "02/01/2006"

// Informativo represents one STF case summary row of the dataset
type Informativo struct {
	Index            int        `json:"index"` // row position in the record store
	Informativo      int        `json:"informativo"`
	DataJulgamento   *time.Time `json:"data_julgamento,omitempty"`
	ClasseProcesso   string     `json:"classe_processo"`
	RamoDireito      *string    `json:"ramo_direito,omitempty"`
	Materia          *string    `json:"materia,omitempty"`
	RepercussaoGeral *string    `json:"repercussao_geral,omitempty"`
	Titulo           *string    `json:"titulo,omitempty"`
	Resumo           *string    `json:"resumo,omitempty"`
	TeseJulgado      *string    `json:"tese_julgado,omitempty"`
}

// Year returns the judgment year, or 0 when the date is unknown
func (i Informativo) Year() int {
	if i.DataJulgamento == nil {
		return 0
	}
	return i.DataJulgamento.Year()
}

// FormattedDate returns the judgment date as dd/mm/yyyy or the given fallback
func (i Informativo) FormattedDate(fallback string) string {
	if i.DataJulgamento == nil {
		return fallback
	}
	return i.DataJulgamento.Format(DateLayout)
}

// Value dereferences a nullable text field, returning "" for null
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ValueOr dereferences a nullable text field, returning fallback for null
func ValueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// ScoredMatch pairs a record with its relevance score for one query
type ScoredMatch struct {
	Score       int         `json:"score"`
	Informativo Informativo `json:"informativo"`
}

// FilterOptions lists the selectable values for every dashboard filter
type FilterOptions struct {
	Informativos      []int      `json:"informativos"`
	RamosDireito      []string   `json:"ramos_direito"`
	ClassesProcesso   []string   `json:"classes_processo"`
	RepercussoesGeral []string   `json:"repercussoes_geral"`
	MinDate           *time.Time `json:"min_date,omitempty"`
	MaxDate           *time.Time `json:"max_date,omitempty"`
}
