package repository

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"informativos-backend/logger"
	"informativos-backend/models"

	"github.com/xuri/excelize/v2"
)

// Column headers of the informativos workbook
const (
	ColInformativo      = "Informativo"
	ColClasseProcesso   = "Classe Processo"
	ColDataJulgamento   = "Data Julgamento"
	ColTitulo           = "Título"
	ColRamoDireito      = "Ramo Direito"
	ColMateria          = "Matéria"
	ColRepercussaoGeral = "Repercussão Geral"
	ColResumo           = "Resumo"
	ColTeseJulgado      = "Tese Julgado"
)

// Columns lists the workbook headers in their canonical order
var Columns = []string{
	ColInformativo,
	ColClasseProcesso,
	ColDataJulgamento,
	ColTitulo,
	ColRamoDireito,
	ColMateria,
	ColRepercussaoGeral,
	ColResumo,
	ColTeseJulgado,
}

var dateLayouts = []string{
	models.DateLayout,
	"2/1/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// LoadInformativos parses the first sheet of an .xlsx workbook into records.
// Unparseable dates become null; rows whose informativo number is not an
// integer are skipped with a warning.
func LoadInformativos(r io.Reader, log *logger.Logger) ([]models.Informativo, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}
	if _, ok := header[ColInformativo]; !ok {
		return nil, fmt.Errorf("missing required column %q", ColInformativo)
	}

	cell := func(row []string, col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]models.Informativo, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		number, err := parseInformativo(cell(row, ColInformativo))
		if err != nil {
			log.WithFields(map[string]interface{}{
				"row":   n + 2,
				"value": cell(row, ColInformativo),
			}).Warn("Skipping row without a valid informativo number")
			continue
		}

		records = append(records, models.Informativo{
			Index:            len(records),
			Informativo:      number,
			DataJulgamento:   parseDate(cell(row, ColDataJulgamento)),
			ClasseProcesso:   cell(row, ColClasseProcesso),
			RamoDireito:      nullable(cell(row, ColRamoDireito)),
			Materia:          nullable(cell(row, ColMateria)),
			RepercussaoGeral: nullable(cell(row, ColRepercussaoGeral)),
			Titulo:           nullable(cell(row, ColTitulo)),
			Resumo:           nullable(cell(row, ColResumo)),
			TeseJulgado:      nullable(cell(row, ColTeseJulgado)),
		})
	}

	return records, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// nullable maps an empty cell to null
func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func parseInformativo(v string) (int, error) {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("informativo %q is not an integer", v)
	}
	return int(f), nil
}

// parseDate accepts dd/mm/yyyy text, ISO dates and Excel serial numbers.
// Anything else yields nil.
func parseDate(v string) *time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}

	return nil
}
