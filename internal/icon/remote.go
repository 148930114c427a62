package icon

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"polaris/components/internal/config"
)

type remoteProvider struct {
	rl         ratelimit.Limiter
	set        string
	httpClient *resty.Client
	mirrors    MirrorSupplier

	// Circuit breaker for failing mirrors
	breakerMutex     sync.Mutex
	failures         int
	breakerThreshold int
	breakerCooldown  time.Duration
	openUntil        time.Time
}

// NewRemote fetches icons as <mirror>/<set>/<name>.svg.
func NewRemote(cfg config.IconsConfig, mirrors MirrorSupplier) Provider {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "image/svg+xml")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	threshold := cfg.BreakerThreshold
	if threshold <= 0 {
		threshold = 1
	}

	return &remoteProvider{
		rl:               rl,
		set:              cfg.Set,
		httpClient:       client,
		mirrors:          mirrors,
		breakerThreshold: threshold,
		breakerCooldown:  time.Duration(cfg.BreakerCooldown) * time.Second,
	}
}

func (p *remoteProvider) Icon(ctx context.Context, name string) (template.HTML, error) {
	source := Source(p.set, name)

	if remaining := p.breakerRemaining(); remaining > 0 {
		log.Debugf("🚫 Icon %s blocked by circuit breaker. Remaining time: %v", source, remaining.Round(time.Second))
		return "", fmt.Errorf("%w for %v more", ErrCircuitOpen, remaining.Round(time.Second))
	}

	attempts := min(p.mirrors.Len(), 2)
	if attempts == 0 {
		return "", fmt.Errorf("no icon mirror configured for %s", source)
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		raw, err := p.fetch(ctx, p.mirrors.Get(), name)
		if err == nil {
			p.recordSuccess()
			return Decorate(raw, source)
		}
		if errors.Is(err, ErrNotFound) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("icon request cancelled: %w", ctx.Err())
		}

		lastErr = err
		log.Warnf("🔄 Icon %s failed on mirror (attempt %d/%d): %v", source, i+1, attempts, err)
	}

	p.recordFailure()
	return "", lastErr
}

func (p *remoteProvider) fetch(ctx context.Context, mirror, name string) (string, error) {
	p.rl.Take()

	iconURL := fmt.Sprintf("%s/%s/%s.svg", mirror, url.PathEscape(p.set), url.PathEscape(name))

	resp, err := p.httpClient.R().
		SetContext(ctx).
		Get(iconURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", iconURL, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, Source(p.set, name))
	}
	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return resp.String(), nil
}

func (p *remoteProvider) breakerRemaining() time.Duration {
	p.breakerMutex.Lock()
	defer p.breakerMutex.Unlock()

	if p.openUntil.IsZero() {
		return 0
	}

	remaining := time.Until(p.openUntil)
	if remaining <= 0 {
		p.openUntil = time.Time{}
		p.failures = 0
		log.Infof("✅ Icon circuit breaker re-enabled - requests are now allowed")
		return 0
	}
	return remaining
}

func (p *remoteProvider) recordSuccess() {
	p.breakerMutex.Lock()
	defer p.breakerMutex.Unlock()
	p.failures = 0
}

func (p *remoteProvider) recordFailure() {
	p.breakerMutex.Lock()
	defer p.breakerMutex.Unlock()

	p.failures++
	if p.failures < p.breakerThreshold || p.breakerCooldown <= 0 {
		return
	}

	p.openUntil = time.Now().Add(p.breakerCooldown)
	log.Warnf("🚫 Icon circuit breaker activated after %d failures, lookups disabled until %v",
		p.failures, p.openUntil.Format("15:04:05"))
}
