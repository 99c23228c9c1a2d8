// Package ingest fills the catalog from Open Library metadata, one ISBN
// batch at a time.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"libraryapi/internal/book"
	"libraryapi/internal/catalog"
	"libraryapi/internal/platform/logging"
	"libraryapi/internal/platform/openlibrary"
)

const unknownAuthor = "Unknown"

type Config struct {
	BatchSize int
	Copies    int
}

type Source interface {
	EditionsByISBN(ctx context.Context, isbns []string) (map[string]openlibrary.Edition, error)
}

type Catalog interface {
	Create(ctx context.Context, in catalog.CreateInput) (book.Book, error)
}

// Result lists what happened to every requested ISBN.
type Result struct {
	Imported []string
	Skipped  []string // already in the catalog
	Missing  []string // unknown to Open Library
	Invalid  []string
}

type Service struct {
	source  Source
	catalog Catalog
	cfg     Config
	logger  *slog.Logger
}

func NewService(source Source, cat Catalog, cfg Config, logger *slog.Logger) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.Copies <= 0 {
		cfg.Copies = 1
	}
	return &Service{source: source, catalog: cat, cfg: cfg, logger: logging.OrDefault(logger)}
}

// Import creates a catalog entry with cfg.Copies copies for every ISBN Open
// Library knows. It stops at the first lookup or storage failure and returns
// the partial result.
func (s *Service) Import(ctx context.Context, isbns []string) (Result, error) {
	var res Result
	var pending []string
	seen := make(map[string]bool, len(isbns))
	for _, raw := range isbns {
		isbn := normalize(raw)
		if seen[isbn] {
			continue
		}
		seen[isbn] = true
		if !validISBN(isbn) {
			res.Invalid = append(res.Invalid, raw)
			continue
		}
		pending = append(pending, isbn)
	}

	for start := 0; start < len(pending); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(pending))
		if err := s.importBatch(ctx, pending[start:end], &res); err != nil {
			return res, err
		}
	}

	s.logger.Info("catalog import finished",
		"imported", len(res.Imported),
		"skipped", len(res.Skipped),
		"missing", len(res.Missing),
		"invalid", len(res.Invalid),
	)
	return res, nil
}

func (s *Service) importBatch(ctx context.Context, batch []string, res *Result) error {
	editions, err := s.source.EditionsByISBN(ctx, batch)
	if err != nil {
		return fmt.Errorf("lookup %d isbns: %w", len(batch), err)
	}

	for _, isbn := range batch {
		ed, ok := editions[isbn]
		if !ok || strings.TrimSpace(ed.Title) == "" {
			res.Missing = append(res.Missing, isbn)
			continue
		}

		in := catalog.CreateInput{
			ISBN:        isbn,
			Title:       strings.TrimSpace(ed.Title),
			Author:      ed.AuthorNames(),
			TotalCopies: s.cfg.Copies,
		}
		if in.Author == "" {
			in.Author = unknownAuthor
		}
		if y, ok := ed.PublishYear(); ok {
			in.PublicationYear = &y
		}

		_, err := s.catalog.Create(ctx, in)
		switch {
		case errors.Is(err, book.ErrISBNTaken):
			s.logger.Debug("isbn already in catalog", "isbn", isbn)
			res.Skipped = append(res.Skipped, isbn)
		case err != nil:
			return fmt.Errorf("create %s: %w", isbn, err)
		default:
			res.Imported = append(res.Imported, isbn)
		}
	}
	return nil
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.ToUpper(s)
}

// validISBN accepts 13 digits, or 9 digits followed by a digit or X.
func validISBN(s string) bool {
	switch len(s) {
	case 10:
		for i, r := range s {
			if r >= '0' && r <= '9' || i == 9 && r == 'X' {
				continue
			}
			return false
		}
		return true
	case 13:
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	default:
		return false
	}
}
