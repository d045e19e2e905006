// Package cli implements the informativos command line tool.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"informativos-backend/config"
	"informativos-backend/logger"
	"informativos-backend/repository"
	"informativos-backend/storage"

	"github.com/spf13/cobra"
)

var (
	datasetFile string
	formatFlag  string
	verbose     bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "informativos",
	Short: "Browse, search and study STF informativos",
	Long:  "Command line access to the STF informativos dataset: filtered listings, keyword questions, true/false quizzes and chart statistics.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&datasetFile, "file", "", "Read the dataset from a local .xlsx file instead of the configured storage")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log loader warnings to stderr")
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

func cliLogger(component string) *logger.Logger {
	if !verbose {
		return logger.Discard()
	}
	logger.Init("debug")
	logger.SetOutput(os.Stderr)
	return logger.New(component)
}

// openDataset loads the record store from --file or from the configured storage
func openDataset(ctx context.Context, cfg *config.Config) *repository.InformativoRepository {
	log := cliLogger("loader")

	if datasetFile != "" {
		f, err := os.Open(datasetFile)
		if err != nil {
			exitErr("load dataset", err)
		}
		defer f.Close()

		records, err := repository.LoadInformativos(f, log)
		if err != nil {
			exitErr("load dataset", err)
		}
		return repository.NewInformativoRepository(records)
	}

	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		exitErr("open storage", err)
	}
	repo, err := repository.LoadInformativoRepository(ctx, store, cfg.DatasetPath, log)
	if errors.Is(err, storage.ErrObjectNotFound) {
		exitErr("load dataset", fmt.Errorf("%w (pass --file or upload one with 'informativos push')", err))
	}
	if err != nil {
		exitErr("load dataset", err)
	}
	return repo
}

func jsonOutput() bool {
	return formatFlag == "json"
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
