package cli

import (
	"fmt"
	"strings"

	"informativos-backend/models"
	"informativos-backend/service"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Rank informativos by keyword relevance",
		Long:  "Score every record against the query words longer than three characters (title 3, summary 2, subject 1, branch 1) and print the best matches.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", service.DefaultSearchLimit, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	cfg := loadConfig()
	repo := openDataset(cmd.Context(), cfg)

	matches := service.FindRelevant(query, repo.All(), limit)
	if jsonOutput() {
		printJSON(matches)
		return
	}

	if len(matches) == 0 {
		fmt.Println("Nenhum informativo relevante encontrado.")
		return
	}
	for _, m := range matches {
		fmt.Printf("%3d  Informativo %d (%s): %s\n",
			m.Score,
			m.Informativo.Informativo,
			m.Informativo.FormattedDate(service.FallbackDate),
			models.ValueOr(m.Informativo.Titulo, service.FallbackTitulo),
		)
	}
}
