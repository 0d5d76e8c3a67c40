package kebiao

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"kebiao-backend/lib/restyutil"
	"kebiao-backend/lib/scrapers/jwglxt"
	"kebiao-backend/lib/timezone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("kebiao.services.kebiao")

type Service struct {
	baseUrl          string
	timeout          time.Duration
	instrumentOutput restyutil.InstrumentOutput
}

type ServiceOptions struct {
	// base url of the jwglxt deployment
	BaseUrl string
	// per-request deadline, defaults to the scraper's 5s
	Timeout time.Duration
	// optional request/response capture for debugging
	InstrumentOutput restyutil.InstrumentOutput
}

func NewService(opts ServiceOptions) Service {
	if opts.BaseUrl == "" {
		panic("empty base url")
	}
	return Service{
		baseUrl:          opts.BaseUrl,
		timeout:          opts.Timeout,
		instrumentOutput: opts.InstrumentOutput,
	}
}

// GetSchedule runs the whole retrieval for the term active right now:
// login ceremony, schedule query, normalization. It never returns an
// error; every failure is coerced into one of the non-success statuses
// so the caller only ever sees the four-value contract. Each call uses
// its own session, nothing is shared across invocations.
func (s Service) GetSchedule(ctx context.Context, creds Credentials) Result {
	ctx, span := tracer.Start(ctx, "GetSchedule")
	defer span.End()

	year, term := jwglxt.CurrentTerm(timezone.Now())
	slog.DebugContext(ctx, "resolved current term", "year", year, "term", term)

	client, err := jwglxt.NewClient(jwglxt.ClientOptions{
		BaseUrl:          s.baseUrl,
		Timeout:          s.timeout,
		InstrumentOutput: s.instrumentOutput,
	})
	if err != nil {
		return s.classify(ctx, "initialize client", err)
	}

	err = client.Login(ctx, creds.AccountId, creds.Password)
	if err != nil {
		return s.classify(ctx, "login", err)
	}

	payload, err := client.FetchSchedule(ctx, year, term)
	if err != nil {
		return s.classify(ctx, "fetch schedule", err)
	}

	record := normalizeSchedule(payload, year, term)
	span.SetStatus(codes.Ok, "")
	return Result{Status: StatusSuccess, Data: &record}
}

func (s Service) classify(ctx context.Context, step string, err error) Result {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, step)

	status := StatusError
	switch {
	case errors.Is(err, jwglxt.ErrBadCredentials):
		status = StatusBadCredentials
	case isTimeout(err):
		status = StatusTimeout
	}

	slog.WarnContext(
		ctx, "schedule retrieval failed",
		"step", step,
		"status", status,
		"err", err,
	)
	return Result{Status: status}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
