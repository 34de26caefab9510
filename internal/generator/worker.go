package generator

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/clock"

	"VanityEth/internal/crypto"
	"VanityEth/internal/patterns"
)

// worker runs GENERATE -> DERIVE -> MATCH until its context ends.
type worker struct {
	index   int
	words   int
	source  Source
	deriver *crypto.Deriver
	matcher *patterns.Matcher
	clock   clock.Clock

	attempts *atomic.Uint64
	meter    *Meter // nil unless this worker benchmarks
	onSample func(Sample)
	out      chan<- MatchResult
}

// run returns nil on cancellation and an error when the pipeline breaks an
// invariant, which stops the whole engine.
func (w *worker) run(ctx context.Context) error {
	start := w.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		cred, err := w.source.Generate(w.words)
		if err != nil {
			return fmt.Errorf("worker %d: %w", w.index, err)
		}
		addr, err := w.deriver.Address(cred.PublicKey)
		if err != nil {
			return fmt.Errorf("worker %d: %w", w.index, err)
		}
		w.attempts.Add(1)

		if w.matcher.Match(addr) {
			now := w.clock.Now()
			// The writer drains until every worker has returned, so this
			// send cannot block forever, even during shutdown.
			w.out <- MatchResult{
				ID:       uuid.NewString(),
				Worker:   w.index,
				Words:    w.words,
				Elapsed:  now.Sub(start),
				Found:    now,
				Mnemonic: cred.Mnemonic,
				Address:  addr,
			}
		}

		if w.meter != nil {
			if s, ok := w.meter.Tick(); ok {
				w.onSample(s)
			}
		}
	}
}
