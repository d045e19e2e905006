package service

import (
	"fmt"
	"strings"
	"time"

	"informativos-backend/models"
)

// AllSentinel is the select-box value meaning "no filter"
const AllSentinel = "Todos"

// FilterParams holds the active dashboard filters. Zero values, and the
// AllSentinel for the categorical fields, leave a predicate unset.
type FilterParams struct {
	Informativo      *int
	RamoDireito      string
	ClasseProcesso   string
	RepercussaoGeral string
	DateFrom         *time.Time
	DateTo           *time.Time
	Term             string
}

func isSet(v string) bool {
	return v != "" && v != AllSentinel
}

// ApplyFilters returns the records satisfying every active predicate, in
// their original order. The result shares record values with the input.
func ApplyFilters(records []models.Informativo, params FilterParams) []models.Informativo {
	term := strings.ToLower(params.Term)

	var from, to time.Time
	if params.DateFrom != nil {
		from = dateOnly(*params.DateFrom)
	}
	if params.DateTo != nil {
		to = dateOnly(*params.DateTo)
	}

	out := make([]models.Informativo, 0, len(records))
	for _, rec := range records {
		if params.Informativo != nil && rec.Informativo != *params.Informativo {
			continue
		}
		if isSet(params.RamoDireito) && !equalsNullable(rec.RamoDireito, params.RamoDireito) {
			continue
		}
		if isSet(params.ClasseProcesso) && rec.ClasseProcesso != params.ClasseProcesso {
			continue
		}
		if isSet(params.RepercussaoGeral) && !equalsNullable(rec.RepercussaoGeral, params.RepercussaoGeral) {
			continue
		}
		if params.DateFrom != nil || params.DateTo != nil {
			if rec.DataJulgamento == nil {
				continue
			}
			day := dateOnly(*rec.DataJulgamento)
			if params.DateFrom != nil && day.Before(from) {
				continue
			}
			if params.DateTo != nil && day.After(to) {
				continue
			}
		}
		if term != "" && !matchesTerm(rec, term) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func equalsNullable(field *string, want string) bool {
	return field != nil && *field == want
}

// matchesTerm checks title, summary, subject matter and thesis; term is already lowercased
func matchesTerm(rec models.Informativo, term string) bool {
	for _, field := range []*string{rec.Titulo, rec.Resumo, rec.Materia, rec.TeseJulgado} {
		if strings.Contains(strings.ToLower(models.Value(field)), term) {
			return true
		}
	}
	return false
}

// dateOnly drops the clock so range checks compare calendar days
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// filterDateLayouts are accepted for the date range bounds
var filterDateLayouts = []string{models.DateLayout, "2006-01-02"}

// ParseFilterDate parses a range bound written dd/mm/yyyy or yyyy-mm-dd.
// An empty string is an unset bound.
func ParseFilterDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range filterDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, expected dd/mm/yyyy or yyyy-mm-dd", raw)
}
