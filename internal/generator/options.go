package generator

import (
	"context"
	"io"
	"time"

	"github.com/lightningnetwork/lnd/clock"

	"VanityEth/internal/metrics"
	"VanityEth/internal/mnemonic"
	"VanityEth/internal/notify"
	"VanityEth/pkg/config"
)

// Source produces candidate credentials. Each worker owns one.
type Source interface {
	Generate(words int) (mnemonic.Credential, error)
}

// Notifier receives every match, off the search path.
type Notifier interface {
	Send(ctx context.Context, p notify.Payload) error
}

type Options struct {
	Search config.SearchConfig

	Lang string    // summary and match block language
	Out  io.Writer // primary output, os.Stdout when nil

	NewSource func(worker int) Source // crypto/rand backed generator when nil
	Clock     clock.Clock             // wall clock when nil
	Notifier  Notifier                // nil disables delivery
	Metrics   *metrics.Metrics        // optional

	BenchWindow      uint64        // attempts per benchmark sample, DefaultWindow when 0
	ProgressInterval time.Duration // 0 disables the progress log
	Grace            time.Duration // wait for pending notifications on exit
}

func (o *Options) setDefaults() {
	if o.NewSource == nil {
		o.NewSource = func(int) Source { return mnemonic.NewGenerator(nil) }
	}
	if o.Clock == nil {
		o.Clock = clock.NewDefaultClock()
	}
	if o.BenchWindow == 0 {
		o.BenchWindow = DefaultWindow
	}
	if o.Grace <= 0 {
		o.Grace = 10 * time.Second
	}
}
