package service

import (
	"fmt"
	"time"

	"informativos-backend/models"
)

func str(s string) *string {
	return &s
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// summarizedRecords builds n records that all carry a summary, numbered from 1000
func summarizedRecords(n int) []models.Informativo {
	records := make([]models.Informativo, n)
	for i := range records {
		records[i] = models.Informativo{
			Index:          i,
			Informativo:    1000 + i,
			DataJulgamento: day(2022, time.March, 1+i%28),
			ClasseProcesso: "ADI",
			RamoDireito:    str("Direito Constitucional"),
			Titulo:         str(fmt.Sprintf("Tema %d", i)),
			Resumo:         str(fmt.Sprintf("A lei estadual %d pode dispor sobre o direito de greve dos servidores", i)),
		}
	}
	return records
}
