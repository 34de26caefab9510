package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"VanityEth/internal/crypto"
	"VanityEth/internal/patterns"
	"VanityEth/pkg/config"
	"VanityEth/pkg/i18n"
	"VanityEth/pkg/logx"
)

// Engine fans the search out over Search.Threads workers.
type Engine struct {
	opt      Options
	msgs     i18n.Messages
	matcher  *patterns.Matcher
	reporter *Reporter
	attempts atomic.Uint64
}

// New validates the configuration and compiles the pattern. Nothing runs yet.
func New(opt Options) (*Engine, error) {
	if err := opt.Search.Validate(); err != nil {
		return nil, fmt.Errorf("search config: %w", err)
	}
	matcher, err := patterns.Compile(opt.Search.Pattern)
	if err != nil {
		return nil, err
	}
	opt.setDefaults()
	if opt.Out == nil {
		opt.Out = os.Stdout
	}

	e := &Engine{
		opt:     opt,
		msgs:    i18n.Get(opt.Lang),
		matcher: matcher,
	}
	e.reporter = NewReporter(opt.Out, e.msgs, opt.Notifier, opt.Metrics)
	if opt.Metrics != nil {
		opt.Metrics.TrackAttempts(e.Attempts)
	}
	return e, nil
}

// Attempts is the number of candidates checked by all workers so far.
func (e *Engine) Attempts() uint64 { return e.attempts.Load() }

// Run searches until ctx is cancelled or a worker fails. A worker failure
// cancels the others and is returned; otherwise Run returns ctx.Err().
func (e *Engine) Run(ctx context.Context) error {
	cfg := e.opt.Search
	threads := cfg.Threads

	if prev := runtime.GOMAXPROCS(0); threads > prev {
		runtime.GOMAXPROCS(threads)
		defer runtime.GOMAXPROCS(prev)
	}

	e.reporter.Summary(cfg)
	if cfg.GPU {
		logx.S().Warnw(e.msgs.GPUFallback, "gpu_platform", cfg.GPUPlatform)
	}
	if e.matcher.MatchesAll() {
		logx.S().Warnw("empty pattern, every address will match")
	}

	start := e.opt.Clock.Now()
	logx.S().Infow("search started",
		"threads", threads,
		"pattern", cfg.Pattern,
		"words", cfg.Words,
		"benchmark", cfg.Benchmark,
		"webhook", cfg.Webhook != "",
	)

	events := make(chan MatchResult, threads*4)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for ev := range events {
			e.reporter.Report(ev)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	statusCtx, stopStatus := context.WithCancel(gctx)
	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		e.progress(statusCtx, start)
	}()

	bench := -1
	if cfg.Benchmark {
		bench = benchWorker(threads)
	}
	for i := 0; i < threads; i++ {
		w := &worker{
			index:    i,
			words:    config.WordsFor(cfg.Words, i),
			source:   e.opt.NewSource(i),
			deriver:  crypto.NewDeriver(),
			matcher:  e.matcher,
			clock:    e.opt.Clock,
			attempts: &e.attempts,
			onSample: e.reporter.Throughput,
			out:      events,
		}
		if i == bench {
			w.meter = NewMeter(e.opt.Clock, e.opt.BenchWindow, threads)
		}
		g.Go(func() error { return w.run(gctx) })
	}

	err := g.Wait()
	stopStatus()
	close(events)
	<-writerDone
	<-statusDone

	graceCtx, cancel := context.WithTimeout(context.Background(), e.opt.Grace)
	defer cancel()
	if cerr := e.reporter.Close(graceCtx); cerr != nil {
		logx.S().Warnw("pending webhook deliveries abandoned", "err", cerr)
	}

	elapsed := e.opt.Clock.Now().Sub(start)
	logx.S().Infow("stopped",
		"elapsed", humanDuration(elapsed),
		"attempts", e.Attempts(),
		"rate_addr_per_sec", fmt.Sprintf("%.2f", rate(e.Attempts(), elapsed)),
	)

	if err != nil {
		logx.S().Errorw("search aborted", "err", err)
		return err
	}
	return ctx.Err()
}

// Run builds an engine from opt and runs it.
func Run(ctx context.Context, opt Options) error {
	e, err := New(opt)
	if err != nil {
		return err
	}
	return e.Run(ctx)
}

// IsShutdown reports whether err only signals a requested stop.
func IsShutdown(err error) bool {
	return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// progress logs the measured aggregate rate every ProgressInterval.
func (e *Engine) progress(ctx context.Context, start time.Time) {
	interval := e.opt.ProgressInterval
	if interval <= 0 {
		<-ctx.Done()
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-e.opt.Clock.TickAfter(interval):
			elapsed := now.Sub(start)
			n := e.Attempts()
			logx.S().Infow("progress",
				"attempts", n,
				"rate_addr_per_sec", fmt.Sprintf("%.2f", rate(n, elapsed)),
				"elapsed", humanDuration(elapsed),
			)
		}
	}
}

func rate(n uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}

// ------------------------------- helpers ------------------------------------

func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
}
