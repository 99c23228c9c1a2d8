package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"libraryapi/internal/app"
	"libraryapi/internal/book"
	"libraryapi/internal/catalog"
	"libraryapi/internal/config"
	"libraryapi/internal/patron"
	"libraryapi/internal/platform/logging"
)

var seedBooks = []catalog.CreateInput{
	{ISBN: "9780441013593", Title: "Dune", Author: "Frank Herbert", PublicationYear: year(1965), TotalCopies: 3},
	{ISBN: "9780156012195", Title: "The Little Prince", Author: "Antoine de Saint-Exupéry", PublicationYear: year(1943), TotalCopies: 2},
	{ISBN: "9780141439518", Title: "Pride and Prejudice", Author: "Jane Austen", PublicationYear: year(1813), TotalCopies: 4},
	{ISBN: "9780061120084", Title: "To Kill a Mockingbird", Author: "Harper Lee", PublicationYear: year(1960), TotalCopies: 1},
	{ISBN: "9780451524935", Title: "Nineteen Eighty-Four", Author: "George Orwell", PublicationYear: year(1949), TotalCopies: 2},
	{ISBN: "9780547928227", Title: "The Hobbit", Author: "J. R. R. Tolkien", PublicationYear: year(1937), TotalCopies: 5},
}

var seedPatrons = []patron.Input{
	{Name: "Ada Lovelace", Email: "ada@library.test", NationalID: "SEED-0001"},
	{Name: "Grace Hopper", Email: "grace@library.test", NationalID: "SEED-0002"},
	{Name: "Alan Turing", Email: "alan@library.test", NationalID: "SEED-0003"},
	{Name: "Hedy Lamarr", Email: "hedy@library.test", NationalID: "SEED-0004", Status: patron.StatusInactive},
}

func year(y int) *int { return &y }

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a small demo catalog and patron list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			books, patrons, err := seed(ctx, a, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d books and %d patrons\n", books, patrons)
			return nil
		},
	}
}

// seed creates the demo records through the services. Records that already
// exist are skipped, so running it twice is harmless.
func seed(ctx context.Context, a *app.App, logger *slog.Logger) (int, int, error) {
	var books, patrons int
	for _, in := range seedBooks {
		_, err := a.Books.Create(ctx, in)
		switch {
		case errors.Is(err, book.ErrISBNTaken):
			logger.Debug("book already seeded", "isbn", in.ISBN)
		case err != nil:
			return books, patrons, fmt.Errorf("seed book %s: %w", in.ISBN, err)
		default:
			books++
		}
	}
	for _, in := range seedPatrons {
		_, err := a.Patrons.Create(ctx, in)
		switch {
		case errors.Is(err, patron.ErrContactTaken):
			logger.Debug("patron already seeded", "email", in.Email)
		case err != nil:
			return books, patrons, fmt.Errorf("seed patron %s: %w", in.Email, err)
		default:
			patrons++
		}
	}
	return books, patrons, nil
}
