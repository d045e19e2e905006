package service

import (
	"testing"
	"time"

	"informativos-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture() []models.Informativo {
	withClock := time.Date(2022, time.March, 10, 15, 30, 0, 0, time.UTC)
	return []models.Informativo{
		{Index: 0, Informativo: 1050, DataJulgamento: &withClock, ClasseProcesso: "ADI",
			RamoDireito: str("Direito Tributário"), RepercussaoGeral: str("Não"),
			Titulo: str("ICMS e energia elétrica"), TeseJulgado: str("É inconstitucional a alíquota majorada")},
		{Index: 1, Informativo: 1050, DataJulgamento: day(2022, time.March, 11), ClasseProcesso: "RE",
			RamoDireito: str("Direito Administrativo"), RepercussaoGeral: str("Sim"),
			Titulo: str("Concurso público"), Resumo: str("Nomeação de aprovados")},
		{Index: 2, Informativo: 1100, ClasseProcesso: "RE",
			RamoDireito: nil, RepercussaoGeral: str("Sim"),
			Titulo: str("Sem data"), Materia: str("Previdência")},
		{Index: 3, Informativo: 1101, DataJulgamento: day(2023, time.June, 1), ClasseProcesso: "ADPF",
			RamoDireito: str("Direito Tributário"), Titulo: nil, Resumo: str("Taxa de fiscalização")},
	}
}

func indexes(records []models.Informativo) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Index
	}
	return out
}

func TestApplyFilters_NoFilters(t *testing.T) {
	records := filterFixture()
	assert.Equal(t, []int{0, 1, 2, 3}, indexes(ApplyFilters(records, FilterParams{})))
}

func TestApplyFilters_AllSentinelIsIgnored(t *testing.T) {
	records := filterFixture()
	params := FilterParams{
		RamoDireito:      AllSentinel,
		ClasseProcesso:   AllSentinel,
		RepercussaoGeral: AllSentinel,
	}
	assert.Len(t, ApplyFilters(records, params), len(records))
}

func TestApplyFilters_Categorical(t *testing.T) {
	records := filterFixture()
	number := 1050

	tests := []struct {
		name   string
		params FilterParams
		want   []int
	}{
		{"informativo", FilterParams{Informativo: &number}, []int{0, 1}},
		{"ramo skips null", FilterParams{RamoDireito: "Direito Tributário"}, []int{0, 3}},
		{"classe", FilterParams{ClasseProcesso: "RE"}, []int{1, 2}},
		{"repercussao", FilterParams{RepercussaoGeral: "Sim"}, []int{1, 2}},
		{"combined", FilterParams{ClasseProcesso: "RE", RepercussaoGeral: "Sim", Informativo: &number}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indexes(ApplyFilters(records, tt.params)))
		})
	}
}

func TestApplyFilters_DateRangeInclusive(t *testing.T) {
	records := filterFixture()

	// record 0 is judged at 15:30 on the 10th and must match a range ending on the 10th
	params := FilterParams{
		DateFrom: day(2022, time.March, 10),
		DateTo:   day(2022, time.March, 10),
	}
	assert.Equal(t, []int{0}, indexes(ApplyFilters(records, params)))

	params = FilterParams{DateFrom: day(2022, time.March, 11)}
	assert.Equal(t, []int{1, 3}, indexes(ApplyFilters(records, params)))

	params = FilterParams{DateTo: day(2022, time.December, 31)}
	assert.Equal(t, []int{0, 1}, indexes(ApplyFilters(records, params)))
}

func TestApplyFilters_NullDateFailsActiveRange(t *testing.T) {
	records := filterFixture()
	params := FilterParams{
		DateFrom: day(2000, time.January, 1),
		DateTo:   day(2100, time.January, 1),
	}
	assert.NotContains(t, indexes(ApplyFilters(records, params)), 2)
}

func TestApplyFilters_Term(t *testing.T) {
	records := filterFixture()

	tests := []struct {
		term string
		want []int
	}{
		{"icms", []int{0}},             // title, case-insensitive
		{"NOMEAÇÃO", []int{1}},         // accented upper case, summary
		{"inconstitucional", []int{0}}, // thesis
		{"previdência", []int{2}},      // materia
		{"taxa", []int{3}},             // summary with null title
		{"inexistente", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, indexes(ApplyFilters(records, FilterParams{Term: tt.term})))
		})
	}
}

func TestApplyFilters_ResultIsSubset(t *testing.T) {
	records := filterFixture()
	params := FilterParams{RamoDireito: "Direito Tributário", Term: "taxa"}

	got := ApplyFilters(records, params)
	require.Len(t, got, 1)
	assert.Contains(t, records, got[0])
}

func TestParseFilterDate(t *testing.T) {
	d, err := ParseFilterDate("10/03/2022")
	require.NoError(t, err)
	assert.Equal(t, *day(2022, time.March, 10), *d)

	d, err = ParseFilterDate("2022-03-10")
	require.NoError(t, err)
	assert.Equal(t, *day(2022, time.March, 10), *d)

	d, err = ParseFilterDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseFilterDate("março de 2022")
	assert.Error(t, err)
}
