package llmprovider

import (
	"context"
	"fmt"
	"time"

	"github-agent/config"
	"github-agent/pkg/log"
)

const (
	DefaultRetryDelay      = time.Second
	DefaultMaxTotalTimeout = 120 * time.Second
)

// Config controls retries and fallback across providers.
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	// MaxTotalTimeout bounds one GenerateContent call across every
	// provider and retry.
	MaxTotalTimeout time.Duration
}

// ConfigFrom reads the llm.* settings. Unparsable or non-positive
// durations fall back to the defaults.
func ConfigFrom(cfg config.LLMConfig) Config {
	return Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      durationOr(cfg.RetryDelay, DefaultRetryDelay),
		MaxTotalTimeout: durationOr(cfg.MaxTotalTimeout, DefaultMaxTotalTimeout),
	}
}

func durationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Manager tries providers in priority order. It satisfies the Generator the
// agent loop needs.
type Manager struct {
	providers []Provider
	cfg       Config
	l         log.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewManager(providers []Provider, cfg Config, l log.Logger) *Manager {
	return &Manager{
		providers: providers,
		cfg:       cfg,
		l:         l,
		sleep:     sleepCtx,
	}
}

// GenerateContent returns the first successful response. A provider is
// retried only while its error is Retryable; any failure moves on to the
// next provider when fallback is enabled.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	if m.cfg.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	for i, p := range m.providers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w after %d provider(s): %w", ErrAllProvidersFailed, i, err)
		}

		resp, err := m.tryProvider(ctx, p, req)
		if err == nil {
			usage := Usage{}
			if resp.Usage != nil {
				usage = *resp.Usage
			}
			m.l.Infof(ctx, "llmprovider.GenerateContent: provider=%s model=%s input_tokens=%d output_tokens=%d",
				p.Name(), p.Model(), usage.InputTokens, usage.OutputTokens)
			return resp, nil
		}

		m.l.Warnf(ctx, "llmprovider.GenerateContent: provider=%s model=%s status=%d: %v",
			p.Name(), p.Model(), statusOf(err), err)
		lastErr = err

		if !m.cfg.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
}

// tryProvider calls p up to RetryAttempts times with a linearly growing
// delay, stopping at the first error that is not Retryable.
func (m *Manager) tryProvider(ctx context.Context, p Provider, req *Request) (*Response, error) {
	attempts := max(m.cfg.RetryAttempts, 1)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := m.sleep(ctx, time.Duration(attempt)*m.cfg.RetryDelay); err != nil {
				return nil, err
			}
			m.l.Debugf(ctx, "llmprovider.tryProvider: provider=%s attempt=%d/%d", p.Name(), attempt+1, attempts)
		}

		resp, err := p.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !Retryable(err) {
			break
		}
	}
	return nil, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
