package cli

import (
	"fmt"

	"informativos-backend/models"
	"informativos-backend/service"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the chart series of the dataset",
		Args:  cobra.NoArgs,
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	repo := openDataset(cmd.Context(), cfg)

	stats, err := service.NewStatsService(service.WithStatsInformativoRepository(repo)).Stats()
	if err != nil {
		exitErr("stats", err)
	}

	if jsonOutput() {
		printJSON(stats)
		return
	}

	fmt.Printf("Total de informativos: %d\n", stats.Total)
	printBuckets("Top 10 Ramos do Direito", stats.RamosDireito)
	printBuckets("Repercussão Geral", stats.RepercussaoGeral)
	printBuckets("Top 15 Classes Processuais", stats.ClassesProcesso)
	printBuckets("Informativos por Ano", stats.PorAno)
}

func printBuckets(title string, buckets []models.Bucket) {
	fmt.Printf("\n%s\n", title)
	if len(buckets) == 0 {
		fmt.Println("  (sem dados)")
		return
	}
	for _, b := range buckets {
		fmt.Printf("  %-50s %5d\n", b.Label, b.Count)
	}
}
