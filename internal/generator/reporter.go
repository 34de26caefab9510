package generator

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"VanityEth/internal/metrics"
	"VanityEth/internal/notify"
	"VanityEth/pkg/config"
	"VanityEth/pkg/i18n"
	"VanityEth/pkg/logx"
)

// MatchResult is one address that satisfied the pattern.
type MatchResult struct {
	ID       string
	Worker   int
	Words    int
	Elapsed  time.Duration // since the finding worker started
	Found    time.Time
	Mnemonic string
	Address  string
}

func (r MatchResult) payload() notify.Payload {
	return notify.Payload{
		ID:       r.ID,
		Duration: strconv.FormatInt(int64(r.Elapsed/time.Second), 10),
		Mnemonic: r.Mnemonic,
		Address:  r.Address,
		Worker:   r.Worker,
		Words:    r.Words,
	}
}

// Reporter writes results to the primary output and forwards them to the
// notifier. Blocks from concurrent callers never interleave.
type Reporter struct {
	mu   sync.Mutex
	out  io.Writer
	msgs i18n.Messages

	notifier Notifier
	metrics  *metrics.Metrics

	pending sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewReporter(out io.Writer, msgs i18n.Messages, n Notifier, m *metrics.Metrics) *Reporter {
	ctx, cancel := context.WithCancel(context.Background())
	return &Reporter{out: out, msgs: msgs, notifier: n, metrics: m, ctx: ctx, cancel: cancel}
}

// Summary prints the startup configuration.
func (r *Reporter) Summary(cfg config.SearchConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, r.msgs.Threads, cfg.Threads)
	fmt.Fprintf(r.out, r.msgs.Pattern, cfg.Pattern)
	if cfg.Words > 0 {
		fmt.Fprintf(r.out, r.msgs.Words, cfg.Words)
	}
	if cfg.Webhook != "" {
		fmt.Fprintf(r.out, r.msgs.Webhook, cfg.Webhook)
	}
	if cfg.Benchmark {
		fmt.Fprint(r.out, r.msgs.Benchmark)
	}
	fmt.Fprint(r.out, "\n\n")
}

func (r *Reporter) Report(res MatchResult) {
	r.mu.Lock()
	fmt.Fprint(r.out, "\n\n")
	fmt.Fprintf(r.out, r.msgs.MatchTime, res.Elapsed)
	fmt.Fprintf(r.out, r.msgs.MatchBIP39, res.Mnemonic)
	fmt.Fprintf(r.out, r.msgs.MatchAddr, res.Address)
	fmt.Fprint(r.out, "\n\n")
	r.mu.Unlock()

	logx.S().Infow("FOUND",
		"id", res.ID,
		"address", res.Address,
		"worker", res.Worker,
		"words", res.Words,
		"elapsed", humanDuration(res.Elapsed),
		"mnemonic", res.Mnemonic,
	)
	if r.metrics != nil {
		r.metrics.Matches.Inc()
	}

	if r.notifier == nil {
		return
	}
	r.pending.Add(1)
	go func() {
		defer r.pending.Done()
		r.deliver(res)
	}()
}

func (r *Reporter) deliver(res MatchResult) {
	if err := r.notifier.Send(r.ctx, res.payload()); err != nil {
		logx.S().Warnw("webhook delivery failed", "id", res.ID, "address", res.Address, "err", err)
		if r.metrics != nil {
			r.metrics.WebhookFailures.Inc()
		}
		return
	}
	logx.S().Debugw("webhook delivered", "id", res.ID)
	if r.metrics != nil {
		r.metrics.WebhookDelivered.Inc()
	}
}

// Throughput prints a benchmark estimate.
func (r *Reporter) Throughput(s Sample) {
	r.mu.Lock()
	fmt.Fprintf(r.out, r.msgs.OpsPerSec, uint64(s.Estimated))
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.EstimatedOPS.Set(s.Estimated)
	}
}

// Close waits for in-flight deliveries until ctx is done, then aborts them.
func (r *Reporter) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
