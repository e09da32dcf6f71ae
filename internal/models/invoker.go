package models

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// RetryPolicy bounds attempts and spaces them with exponential backoff.
// After the k-th failed attempt the invoker waits InitialDelay * 2^k.
type RetryPolicy struct {
	MaxAttempts    int
	InitialDelay   time.Duration
	AttemptTimeout time.Duration
}

// Delay returns the wait following the given failed attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.InitialDelay * time.Duration(1<<attempt)
}

// Result describes one invocation. Degraded results carry whatever partial
// text the last attempt produced, possibly empty.
type Result struct {
	Text     string
	Model    ID
	Attempts int
	Degraded bool
	Err      error
}

// Invoker routes requests to providers by model and hides provider failures
// behind degraded results.
type Invoker struct {
	providers map[string]Provider
	policy    RetryPolicy
	logger    *slog.Logger
}

// NewInvoker creates an invoker over the given providers, keyed by Provider.Name.
func NewInvoker(policy RetryPolicy, logger *slog.Logger, providers ...Provider) *Invoker {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	registry := make(map[string]Provider, len(providers))
	for _, p := range providers {
		registry[p.Name()] = p
	}

	return &Invoker{
		providers: registry,
		policy:    policy,
		logger:    logger.With("system", "models"),
	}
}

// Invoke generates text for prompt with the model resolved from id.
// It never fails: exhausted retries, cancellation, and missing providers all
// produce a degraded Result.
func (i *Invoker) Invoke(ctx context.Context, prompt string, id ID, temperature float64) Result {
	model := Resolve(string(id))
	if model != id {
		i.logger.Warn("unknown model, using default", "requested", id, "model", model)
	}

	result := Result{Model: model}

	provider, ok := i.providers[model.Provider()]
	if !ok {
		result.Degraded = true
		result.Err = ErrProviderUnavailable
		i.logger.Error("no provider registered", "model", model, "provider", model.Provider())
		return result
	}

	req := Request{Model: model, Prompt: prompt, Temperature: temperature}

	for attempt := 1; attempt <= i.policy.MaxAttempts; attempt++ {
		result.Attempts = attempt

		text, err := i.attempt(ctx, provider, req)
		if err == nil {
			result.Text = text
			result.Err = nil
			return result
		}

		result.Text = text
		result.Err = err

		i.logger.Warn(
			"model invocation failed",
			"model", model,
			"attempt", attempt,
			"max_attempts", i.policy.MaxAttempts,
			"error", err,
		)

		if attempt == i.policy.MaxAttempts {
			break
		}

		if err := sleep(ctx, i.policy.Delay(attempt)); err != nil {
			result.Err = errors.Join(result.Err, err)
			break
		}
	}

	result.Degraded = true
	i.logger.Error("model invocation degraded", "model", model, "attempts", result.Attempts, "error", result.Err)
	return result
}

func (i *Invoker) attempt(ctx context.Context, provider Provider, req Request) (string, error) {
	if i.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.policy.AttemptTimeout)
		defer cancel()
	}
	return provider.Generate(ctx, req)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
