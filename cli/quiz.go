package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"informativos-backend/models"
	"informativos-backend/repository"
	"informativos-backend/service"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Practice with generated true/false assertions",
		Long:  "Generate true/false statements from the summarized records and answer them interactively with V (verdadeiro) or F (falso). Enter pula to skip and sair to stop.",
		Args:  cobra.NoArgs,
		Run:   runQuiz,
	}

	cmd.Flags().IntP("count", "n", 0, fmt.Sprintf("Number of assertions, at most %d (default from QUIZ_SIZE)", models.MaxQuizSize))
	cmd.Flags().Int64("seed", 0, "Random seed for a reproducible quiz")

	RootCmd.AddCommand(cmd)
}

func runQuiz(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")
	if !service.ValidQuizSize(count) {
		exitErr("count", service.ErrInvalidQuizSize)
	}

	cfg := loadConfig()
	repo := openDataset(cmd.Context(), cfg)

	if seed == 0 {
		seed = cfg.RandomSeed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	svc := service.NewQuizService(
		service.WithQuizSessionStore(repository.NewMemoryQuizSessionStore()),
		service.WithAssertionGenerator(service.NewSeededAssertionGenerator(seed)),
		service.WithQuizInformativoRepository(repo),
		service.WithDefaultQuizSize(cfg.QuizSize),
		service.WithQuizLogger(cliLogger("quiz")),
	)

	if err := playQuiz(cmd.Context(), svc, count, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		exitErr("quiz", err)
	}
}

// playQuiz runs one quiz session over in/out and prints the final score
func playQuiz(ctx context.Context, svc *service.QuizService, count int, in io.Reader, out io.Writer) error {
	created, err := svc.Create(ctx, service.CreateQuizRequest{Count: count})
	if err != nil {
		return err
	}
	session := created.Session
	scanner := bufio.NewScanner(in)

questions:
	for i, assertion := range session.Assertions {
		fmt.Fprintf(out, "\nAssertiva %d: %s\n", i+1, assertion.Text)
		if !assertion.Answerable() {
			continue
		}

		for {
			fmt.Fprint(out, "Verdadeiro ou falso? [V/F, pula, sair] ")
			if !scanner.Scan() {
				break questions
			}

			var answer bool
			switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
			case "v", "verdadeiro":
				answer = true
			case "f", "falso":
				answer = false
			case "pula":
				continue questions
			case "sair":
				break questions
			default:
				continue
			}

			result, err := svc.SubmitAnswer(ctx, service.SubmitAnswerRequest{
				ID:     session.ID,
				Index:  i,
				Answer: answer,
			})
			if err != nil {
				return err
			}
			if result.Correct {
				fmt.Fprintln(out, "Correto!")
			} else {
				fmt.Fprintf(out, "Incorreto. A resposta correta é: %s\n", verdict(result.CorrectAnswer))
			}
			fmt.Fprintf(out, "Explicação: %s\n", result.Explanation)
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	score, err := svc.Score(ctx, service.ScoreRequest{ID: session.ID})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nPontuação: %d/%d (%.0f%%)\n", score.Correct, score.Answered, score.Ratio*100)
	return nil
}

func verdict(b bool) string {
	if b {
		return "Verdadeiro"
	}
	return "Falso"
}
