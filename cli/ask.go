package cli

import (
	"fmt"
	"strings"
	"time"

	"informativos-backend/service"

	"github.com/google/generative-ai-go/genai"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about the informativos",
		Long:  "Answer a question from the most relevant records. When GEMINI_API_KEY is set the answer is phrased by Gemini, falling back to the keyword answer on failure.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	}

	cmd.Flags().Bool("no-llm", false, "Answer from keyword search only")
	cmd.Flags().Bool("no-delay", false, "Skip the pause before answering")

	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	noLLM, _ := cmd.Flags().GetBool("no-llm")
	noDelay, _ := cmd.Flags().GetBool("no-delay")
	question := strings.Join(args, " ")

	cfg := loadConfig()
	repo := openDataset(cmd.Context(), cfg)

	delay := time.Duration(cfg.AskDelay)
	if noDelay {
		delay = 0
	}
	opts := []service.QuestionServiceOption{
		service.WithQuestionInformativoRepository(repo),
		service.WithSearchLimit(cfg.SearchLimit),
		service.WithAskDelay(delay),
		service.WithQuestionLogger(cliLogger("question")),
	}

	if cfg.Gemini.APIKey != "" && !noLLM {
		client, err := genai.NewClient(cmd.Context(), option.WithAPIKey(cfg.Gemini.APIKey))
		if err != nil {
			exitErr("init gemini", err)
		}
		defer client.Close()
		opts = append(opts, service.WithTextGenerator(service.NewGeminiGenerator(client, cfg.Gemini.Model)))
	}

	svc := service.NewQuestionService(opts...)
	result, err := svc.Ask(cmd.Context(), service.AskRequest{Question: question})
	if err != nil {
		exitErr("ask", err)
	}

	if jsonOutput() {
		printJSON(result)
		return
	}
	fmt.Println(result.Answer)
}
