package request

import (
	"context"
	"fmt"
	"time"

	"steamy/lib/telemetry"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var tracer = telemetry.Tracer("steamy/lib/steam/request")
var meter = telemetry.Meter("steamy/lib/steam/request")

const (
	report_executor_attempt = "executor.attempt"
	report_executor_execute = "executor.execute"
)

// Work performs a single attempt of a request.
type Work func(ctx context.Context) (*resty.Response, error)

// Policy is how many times a request is attempted and how long to wait between
// attempts.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 5,
		Delay:       3 * time.Second,
	}
}

// Outcome is the result of Execute, Response is nil when every attempt failed.
type Outcome struct {
	Response *resty.Response
	Attempts int
}

func (o Outcome) Present() bool {
	return o.Response != nil
}

// StatusError is the failure recorded for an attempt that completed with an
// HTTP status >= 400.
type StatusError struct {
	Code   int
	Status string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d (%s)", e.Code, e.Status)
}

type Option func(e *Executor)

// WithTimer overrides the timer used to wait between attempts.
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(e *Executor) {
		e.newTimer = newTimer
	}
}

type Executor struct {
	policy   Policy
	tel      telemetry.API
	newTimer func() backoff.Timer
	attempts metric.Int64Counter
}

func NewExecutor(policy Policy, tel telemetry.API, opts ...Option) Executor {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if tel == nil {
		tel = telemetry.NoopAPI{}
	}

	e := Executor{policy: policy, tel: tel}
	for _, opt := range opts {
		opt(&e)
	}

	counter, err := meter.Int64Counter(
		"steamy.request.attempts",
		metric.WithDescription("Request attempts by outcome."),
	)
	if err != nil {
		tel.ReportBroken(report_executor_execute, fmt.Errorf("create counter: %w", err))
	} else {
		e.attempts = counter
	}

	return e
}

func (e Executor) Policy() Policy {
	return e.policy
}

func (e Executor) backOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff = &backoff.StopBackOff{}
	if e.policy.MaxAttempts > 1 {
		b = backoff.WithMaxRetries(
			backoff.NewConstantBackOff(e.policy.Delay),
			uint64(e.policy.MaxAttempts-1),
		)
	}
	return backoff.WithContext(b, ctx)
}

func (e Executor) count(ctx context.Context, result string) {
	if e.attempts == nil {
		return
	}
	e.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// Execute runs `work` until it succeeds or the policy runs out of attempts.
// An attempt succeeds when it returns no error and a status below 400. The
// failure itself is only reported, callers decide what an absent outcome means.
func (e Executor) Execute(ctx context.Context, target string, work Work) Outcome {
	ctx, span := tracer.Start(ctx, "request.execute", trace.WithAttributes(
		attribute.String("request.target", target),
		attribute.Int("request.max_attempts", e.policy.MaxAttempts),
	))
	defer span.End()

	var res *resty.Response
	attempt := 0

	operation := func() error {
		attempt++
		r, err := work(ctx)
		if err != nil {
			e.count(ctx, "error")
			return err
		}
		if r == nil {
			e.count(ctx, "error")
			return fmt.Errorf("no response")
		}
		if r.IsError() {
			e.count(ctx, "status")
			return StatusError{Code: r.StatusCode(), Status: r.Status()}
		}
		e.count(ctx, "success")
		res = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		e.tel.ReportWarning(report_executor_attempt, target, attempt, err, wait)
	}

	var timer backoff.Timer
	if e.newTimer != nil {
		timer = e.newTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, e.backOff(ctx), notify, timer)
	span.SetAttributes(attribute.Int("request.attempts", attempt))
	if err != nil {
		e.tel.ReportWarning(report_executor_attempt, target, attempt, err)
		e.tel.ReportBroken(report_executor_execute, target, attempt, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "retries exhausted")
		return Outcome{Attempts: attempt}
	}

	return Outcome{Response: res, Attempts: attempt}
}
