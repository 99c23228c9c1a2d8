package loan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"libraryapi/internal/activity"
	"libraryapi/internal/apperr"
	"libraryapi/internal/book"
	"libraryapi/internal/inventory"
	"libraryapi/internal/patron"
	"libraryapi/internal/platform/logging"
)

const instrumentationName = "libraryapi/internal/loan"

// Service opens and closes loans. Every check and mutation of one call runs
// inside a single store transaction.
type Service struct {
	store   Store
	tracker *activity.Tracker
	period  int
	now     func() time.Time
	logger  *slog.Logger

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	tracer         trace.Tracer
	created        metric.Int64Counter
	returned       metric.Int64Counter
	rejected       metric.Int64Counter
}

type Option func(*Service)

// WithClock replaces the time source; used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithLoanPeriodDays sets the days between loan date and expected return.
func WithLoanPeriodDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.period = days
		}
	}
}

func WithTracker(t *activity.Tracker) Option {
	return func(s *Service) { s.tracker = t }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) { s.tracerProvider = tp }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) { s.meterProvider = mp }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:          store,
		tracker:        activity.NewTracker(activity.DefaultMaxActiveLoans),
		period:         DefaultLoanPeriodDays,
		now:            func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDefault(s.logger)
	s.tracer = s.tracerProvider.Tracer(instrumentationName)

	meter := s.meterProvider.Meter(instrumentationName)
	s.created = s.counter(meter, "library.loans.created", "Loans opened")
	s.returned = s.counter(meter, "library.loans.returned", "Loans closed by a return")
	s.rejected = s.counter(meter, "library.loans.rejected", "Loan operations refused or failed")
	return s
}

func (s *Service) counter(m metric.Meter, name, desc string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit("{loan}"))
	if err != nil {
		s.logger.Warn("create counter", "name", name, "error", err)
		return noop.Int64Counter{}
	}
	return c
}

// Create lends one copy of bookID to patronID.
//
// Checks run in a fixed order so the reported error is deterministic: the
// patron exists, the book exists, the patron is active, the book has a free
// copy, the patron is under the loan limit. The patron row is locked before
// its loans are counted and the book row before its stock is read, so
// concurrent calls can neither over-commit a copy nor exceed the limit.
func (s *Service) Create(ctx context.Context, patronID, bookID string) (View, error) {
	ctx, span := s.tracer.Start(ctx, "loan.Create", trace.WithAttributes(
		attribute.String("patron_id", patronID),
		attribute.String("book_id", bookID),
	))
	defer span.End()

	now := s.now()
	var v View
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		p, err := tx.LockPatron(ctx, patronID)
		if err != nil {
			return err
		}
		b, err := tx.LockBook(ctx, bookID)
		if err != nil {
			return err
		}
		if p.Status != patron.StatusActive {
			return ErrPatronNotActive
		}
		if b.Status != book.StatusAvailable || b.AvailableCopies <= 0 {
			return ErrBookNotAvailable
		}
		if _, err := s.tracker.CheckLimit(ctx, tx, p.ID); err != nil {
			return err
		}
		if _, err := inventory.ReserveCopy(ctx, tx, b.ID); err != nil {
			if errors.Is(err, inventory.ErrNoCopyAvailable) {
				return ErrBookNotAvailable
			}
			return err
		}

		l := Loan{
			ID:                 uuid.NewString(),
			PatronID:           p.ID,
			BookID:             b.ID,
			LoanDate:           now,
			ExpectedReturnDate: now.AddDate(0, 0, s.period),
			Status:             StatusActive,
		}
		if err := tx.InsertLoan(ctx, l, p.Name, b.Title); err != nil {
			return err
		}
		v, err = tx.View(ctx, l.ID)
		return err
	})
	if err != nil {
		s.fail(ctx, span, "create", err, slog.String("patron_id", patronID), slog.String("book_id", bookID))
		return View{}, err
	}

	span.SetAttributes(attribute.String("loan_id", v.ID))
	s.created.Add(ctx, 1)
	s.logger.InfoContext(ctx, "loan created",
		"loan_id", v.ID, "patron_id", patronID, "book_id", bookID,
		"expected_return_date", v.ExpectedReturnDate)
	return v, nil
}

// Return closes an ACTIVE loan and puts its copy back into stock. A loan is
// returned at most once.
func (s *Service) Return(ctx context.Context, loanID string) (View, error) {
	ctx, span := s.tracer.Start(ctx, "loan.Return", trace.WithAttributes(
		attribute.String("loan_id", loanID),
	))
	defer span.End()

	now := s.now()
	var v View
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		l, err := tx.LockLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if l.Status != StatusActive {
			return ErrAlreadyReturned
		}
		span.SetAttributes(
			attribute.String("patron_id", l.PatronID),
			attribute.String("book_id", l.BookID),
		)
		if _, err := inventory.ReleaseCopy(ctx, tx, l.BookID); err != nil {
			return err
		}
		if err := tx.MarkReturned(ctx, l.ID, now); err != nil {
			return err
		}
		v, err = tx.View(ctx, l.ID)
		return err
	})
	if err != nil {
		s.fail(ctx, span, "return", err, slog.String("loan_id", loanID))
		return View{}, err
	}

	s.returned.Add(ctx, 1)
	s.logger.InfoContext(ctx, "loan returned", "loan_id", v.ID, "return_date", v.ReturnDate)
	return v, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, op string, err error, attrs ...slog.Attr) {
	reason := reasonOf(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)
	s.rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("reason", reason),
	))

	level := slog.LevelWarn
	if _, ok := apperr.Message(err); !ok {
		level = slog.LevelError
	}
	args := []any{slog.String("operation", op), slog.String("reason", reason)}
	for _, a := range attrs {
		args = append(args, a)
	}
	if level == slog.LevelError {
		args = append(args, slog.Any("error", err))
	}
	s.logger.Log(ctx, level, "loan rejected", args...)
}

// reasonOf returns a low-cardinality label for err.
func reasonOf(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, inventory.ErrStockInvariant):
		return inventory.ErrStockInvariant.Msg
	}
	if msg, ok := apperr.Message(err); ok {
		return msg
	}
	return "internal"
}
