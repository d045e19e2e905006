package cli

import (
	"fmt"
	"io"
	"os"

	"informativos-backend/repository"
	"informativos-backend/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "push [file.xlsx]",
		Short: "Upload a dataset workbook into the configured storage",
		Long:  "Validate a workbook by parsing it, then upload it to the local or S3 storage. Without --path the file is stored under a versioned key; point DATASET_PATH at the printed path to serve it.",
		Args:  cobra.ExactArgs(1),
		Run:   runPush,
	}

	cmd.Flags().String("path", "", "Storage path to write (default: a versioned datasets/ key)")

	RootCmd.AddCommand(cmd)
}

func runPush(cmd *cobra.Command, args []string) {
	target, _ := cmd.Flags().GetString("path")
	source := args[0]

	cfg := loadConfig()

	f, err := os.Open(source)
	if err != nil {
		exitErr("open workbook", err)
	}
	defer f.Close()

	records, err := repository.LoadInformativos(f, cliLogger("loader"))
	if err != nil {
		exitErr("validate workbook", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		exitErr("rewind workbook", err)
	}

	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		exitErr("open storage", err)
	}

	if target == "" {
		target = storage.VersionedPath(uuid.New(), source)
	}
	location, err := store.Upload(cmd.Context(), target, f)
	if err != nil {
		exitErr("upload", err)
	}

	if jsonOutput() {
		printJSON(map[string]interface{}{
			"path":     target,
			"location": location,
			"records":  len(records),
		})
		return
	}
	fmt.Printf("Uploaded %d records to %s\n", len(records), location)
	fmt.Printf("DATASET_PATH=%s\n", target)
}
