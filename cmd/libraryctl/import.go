package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"libraryapi/internal/app"
	"libraryapi/internal/config"
	"libraryapi/internal/ingest"
	"libraryapi/internal/platform/logging"
	"libraryapi/internal/platform/openlibrary"
)

func newImportCmd() *cobra.Command {
	var (
		copies    int
		batchSize int
		rps       float64
		sourceURL string
	)
	cmd := &cobra.Command{
		Use:   "import ISBN...",
		Short: "Create catalog entries from Open Library metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOperator()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel, cfg.LogFormat)

			ctx := cmd.Context()
			a, err := app.Open(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			client := openlibrary.NewClient("libraryapi-libraryctl/1.0", rps, openlibrary.WithBaseURL(sourceURL))
			svc := ingest.NewService(client, a.Books, ingest.Config{BatchSize: batchSize, Copies: copies}, logger)

			res, err := svc.Import(ctx, args)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d, skipped %d, missing %d, invalid %d\n",
				len(res.Imported), len(res.Skipped), len(res.Missing), len(res.Invalid))
			if len(res.Missing) > 0 {
				fmt.Fprintf(out, "Not found: %s\n", strings.Join(res.Missing, " "))
			}
			if len(res.Invalid) > 0 {
				fmt.Fprintf(out, "Invalid: %s\n", strings.Join(res.Invalid, " "))
			}
			return err
		},
	}
	cmd.Flags().IntVar(&copies, "copies", 1, "copies to register for each imported book")
	cmd.Flags().IntVar(&batchSize, "batch", 20, "ISBNs per Open Library request")
	cmd.Flags().Float64Var(&rps, "rps", 1, "maximum Open Library requests per second")
	cmd.Flags().StringVar(&sourceURL, "source-url", openlibrary.DefaultBaseURL, "Open Library base URL")
	return cmd
}
