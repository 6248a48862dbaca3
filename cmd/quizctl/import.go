package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"quizgym/internal/db"
	"quizgym/internal/quizimport"
	"quizgym/internal/topic"

	"github.com/spf13/cobra"
)

type importOptions struct {
	topicID int64
	dryRun  bool
}

type dryRunReport struct {
	Valid  int      `json:"valid"`
	Errors []string `json:"errors"`
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import quizzes from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd.OutOrStdout(), root.dsn, args[0], opts)
		},
	}
	cmd.Flags().Int64Var(&opts.topicID, "topic", 0, "Default topic id for rows without a Topic ID")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate only, write nothing")
	return cmd
}

func runImport(ctx context.Context, out io.Writer, dsn, path string, opts importOptions) error {
	if !quizimport.IsSpreadsheetName(path) {
		return quizimport.ErrUnsupportedFile
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var defaultTopicID *int64
	if opts.topicID != 0 {
		defaultTopicID = &opts.topicID
	}

	pool, err := db.OpenPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if opts.dryRun {
		ds, err := quizimport.ReadDataset(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		candidates, rowErrors, err := quizimport.NewValidator(topic.NewService(pool)).Validate(ctx, ds, defaultTopicID)
		if err != nil {
			return err
		}
		rep := dryRunReport{Valid: len(candidates), Errors: make([]string, 0, len(rowErrors))}
		for _, re := range rowErrors {
			rep.Errors = append(rep.Errors, re.String())
		}
		return enc.Encode(rep)
	}

	svc := quizimport.NewService(quizimport.PostgresSessions(pool, nil, 0), nil)
	res, err := svc.Import(ctx, quizimport.ImportRequest{
		Filename:       filepath.Base(path),
		Content:        f,
		DefaultTopicID: defaultTopicID,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "import %s\n", res.ID)
	return enc.Encode(res.Report)
}
