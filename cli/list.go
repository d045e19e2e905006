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
		Use:   "list",
		Short: "List informativos matching the dashboard filters",
		Long:  "List the records that satisfy every given filter. With --cards the result is sorted newest first and paginated five per page.",
		Args:  cobra.NoArgs,
		Run:   runList,
	}

	cmd.Flags().Int("informativo", 0, "Informativo number")
	cmd.Flags().String("ramo", "", "Ramo do direito")
	cmd.Flags().String("classe", "", "Classe processual")
	cmd.Flags().String("repercussao", "", "Repercussão geral")
	cmd.Flags().String("from", "", "First judgment date (dd/mm/yyyy or yyyy-mm-dd)")
	cmd.Flags().String("to", "", "Last judgment date (dd/mm/yyyy or yyyy-mm-dd)")
	cmd.Flags().StringP("query", "q", "", "Term searched in title, summary, subject and thesis")
	cmd.Flags().Bool("cards", false, "Show reading cards, newest first")
	cmd.Flags().IntP("page", "p", 1, "Card page")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	params, err := filterParamsFromFlags(cmd)
	if err != nil {
		exitErr("parse filters", err)
	}

	cfg := loadConfig()
	repo := openDataset(cmd.Context(), cfg)
	svc := service.NewInformativoService(service.WithInformativoRepository(repo))

	if cards, _ := cmd.Flags().GetBool("cards"); cards {
		page, _ := cmd.Flags().GetInt("page")
		result, err := svc.Cards(params, page)
		if err != nil {
			exitErr("list", err)
		}
		if jsonOutput() {
			printJSON(result)
			return
		}
		printCards(result)
		return
	}

	result, err := svc.List(params)
	if err != nil {
		exitErr("list", err)
	}
	if jsonOutput() {
		printJSON(result)
		return
	}

	fmt.Printf("Exibindo %d de %d informativos.\n\n", result.Count, result.Total)
	for _, rec := range result.Informativos {
		fmt.Printf("[%d] Informativo %d | %s | %s | %s\n",
			rec.Index,
			rec.Informativo,
			rec.FormattedDate(service.FallbackDate),
			rec.ClasseProcesso,
			models.ValueOr(rec.Titulo, service.FallbackTitulo),
		)
	}
}

func filterParamsFromFlags(cmd *cobra.Command) (service.FilterParams, error) {
	var params service.FilterParams
	params.RamoDireito, _ = cmd.Flags().GetString("ramo")
	params.ClasseProcesso, _ = cmd.Flags().GetString("classe")
	params.RepercussaoGeral, _ = cmd.Flags().GetString("repercussao")
	term, _ := cmd.Flags().GetString("query")
	params.Term = strings.TrimSpace(term)

	if cmd.Flags().Changed("informativo") {
		n, _ := cmd.Flags().GetInt("informativo")
		params.Informativo = &n
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	var err error
	if params.DateFrom, err = service.ParseFilterDate(from); err != nil {
		return params, err
	}
	if params.DateTo, err = service.ParseFilterDate(to); err != nil {
		return params, err
	}
	return params, nil
}

func printCards(result *service.CardsResult) {
	if result.Count == 0 {
		fmt.Println("Nenhum informativo encontrado com os filtros selecionados.")
		return
	}
	fmt.Printf("Mostrando %d-%d de %d informativos (página %d de %d)\n\n",
		result.From, result.To, result.Count, result.Page, result.Pages)

	for _, rec := range result.Informativos {
		fmt.Println(models.ValueOr(rec.Titulo, "Sem título"))
		fmt.Printf("Informativo: %d | Data: %s | Classe: %s | Ramo: %s\n",
			rec.Informativo,
			rec.FormattedDate("Data não disponível"),
			rec.ClasseProcesso,
			models.ValueOr(rec.RamoDireito, "Não especificado"),
		)
		if rec.TeseJulgado != nil {
			fmt.Printf("Tese Julgada: %s\n", *rec.TeseJulgado)
		}
		if rec.Resumo != nil {
			fmt.Printf("Resumo: %s\n", *rec.Resumo)
		}
		fmt.Println()
	}
}
