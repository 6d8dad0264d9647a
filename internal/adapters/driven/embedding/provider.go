// Package embedding provides the EmbeddingProvider: an explicitly
// constructed, explicitly owned handle that selects between the native
// embedding path and the deterministic fallback at runtime.
package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/embedding/fallback"
	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.EmbeddingProvider = (*Provider)(nil)

// initState tracks the provider lifecycle:
// uninitialised -> initialising -> ready, with failed probes returning
// to uninitialised so the next call retries.
type initState int

const (
	stateUninitialised initState = iota
	stateInitialising
	stateReady
)

// Provider wraps an optional native embedding service with the
// deterministic fallback embedder. The native path is probed lazily,
// once; concurrent callers before the probe completes coalesce onto
// the same in-flight attempt.
type Provider struct {
	native driven.EmbeddingService // nil means fallback-only
	fb     *fallback.Embedder

	mu       sync.Mutex
	st       initState
	inflight chan struct{}
	probeErr error
	degraded bool
}

// NewProvider creates a provider. A nil native service yields a
// permanently degraded, fallback-only provider.
func NewProvider(native driven.EmbeddingService) *Provider {
	return &Provider{
		native:   native,
		fb:       fallback.New(),
		degraded: native == nil,
	}
}

// Init probes the native path. It is idempotent and concurrency-safe:
// callers arriving while a probe is in flight wait for that probe's
// outcome instead of starting their own. A failed probe is not cached;
// the next Init retries.
func (p *Provider) Init(ctx context.Context) error {
	if p.native == nil {
		return nil
	}

	for {
		p.mu.Lock()
		switch p.st {
		case stateReady:
			p.mu.Unlock()
			return nil

		case stateInitialising:
			ch := p.inflight
			p.mu.Unlock()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ch:
			}

			p.mu.Lock()
			if p.st == stateInitialising {
				// Another probe started already; wait for it too.
				p.mu.Unlock()
				continue
			}
			err := p.probeErr
			p.mu.Unlock()
			return err

		default: // stateUninitialised
			ch := make(chan struct{})
			p.inflight = ch
			p.st = stateInitialising
			p.mu.Unlock()

			logger.Debug("Probing native embedding service (%s)", p.native.ModelName())
			probeErr := p.native.Ping(ctx)

			p.mu.Lock()
			if probeErr != nil {
				p.st = stateUninitialised
				p.probeErr = fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, probeErr)
				p.degraded = true
				logger.Warn("Native embedding unavailable, degrading to fallback: %v", probeErr)
			} else {
				p.st = stateReady
				p.probeErr = nil
				p.degraded = false
				logger.Info("Native embedding ready: %s (%d dims)", p.native.ModelName(), p.native.Dimensions())
			}
			err := p.probeErr
			p.inflight = nil
			close(ch)
			p.mu.Unlock()
			return err
		}
	}
}

// Embed returns a vector for the text plus the name of the path that
// produced it. The native path is used when ready; any initialisation
// or per-call failure degrades to the deterministic fallback so the
// pipeline keeps working. The returned name reports the fallback on a
// per-call degradation, so callers tagging stored vectors never label
// a fallback vector as native.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, string, error) {
	if p.native != nil {
		if err := p.Init(ctx); err == nil {
			vec, err := p.native.Embed(ctx, text)
			if err == nil {
				return vec, "native:" + p.native.ModelName(), nil
			}
			logger.Warn("Native embed failed, using fallback for this call: %v", err)
		}
	}

	vec, err := p.fb.Embed(ctx, text)
	return vec, p.fb.ModelName(), err
}

// Name identifies the active path. Stored embeddings are tagged with
// this so a later query under a different provider can be rejected
// instead of silently scored.
func (p *Provider) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.native == nil || p.st != stateReady {
		return p.fb.ModelName()
	}
	return "native:" + p.native.ModelName()
}

// Dimensions returns the vector length of the active path.
func (p *Provider) Dimensions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.native == nil || p.st != stateReady {
		return p.fb.Dimensions()
	}
	return p.native.Dimensions()
}

// Degraded reports whether embedding runs on the fallback.
func (p *Provider) Degraded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.degraded
}
