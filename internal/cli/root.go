package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"VanityEth/internal/crypto"
	"VanityEth/internal/generator"
	"VanityEth/internal/metrics"
	"VanityEth/internal/mnemonic"
	"VanityEth/internal/notify"
	"VanityEth/pkg/appcfg"
	"VanityEth/pkg/config"
	"VanityEth/pkg/i18n"
	"VanityEth/pkg/logx"
)

type flags struct {
	appConfig    string
	searchConfig string
	search       config.SearchConfig
}

// NewRootCommand builds the vanityeth command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&flags{search: config.Default()})
}

func newRootCommand(f *flags) *cobra.Command {
	root := &cobra.Command{
		Use:   "vanityeth",
		Short: "Search BIP-39 mnemonics for a vanity Ethereum address",
		Long: `Generates random BIP-39 mnemonics on every core, derives the account at
m/44'/60'/0'/0/0 and prints each one whose checksummed address matches the
given regular expression (case-insensitive, whitespace ignored).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return f.run(cmd)
		},
	}

	fl := root.Flags()
	fl.StringVarP(&f.search.Pattern, "regex", "r", "", "Address pattern (regular expression)")
	fl.IntVarP(&f.search.Words, "words", "w", 0, "Mnemonic words: 12, 24 or 0 to alternate per thread")
	fl.IntVarP(&f.search.Threads, "threads", "t", runtime.NumCPU(), "Number of worker threads")
	fl.StringVarP(&f.search.Webhook, "webhook", "W", "", "URL to POST every match to")
	fl.BoolVarP(&f.search.Benchmark, "benchmark", "b", false, "Print estimated operations per second")
	fl.BoolVar(&f.search.GPU, "gpu", false, "Request GPU search (falls back to CPU)")
	fl.IntVar(&f.search.GPUPlatform, "gpu-platform", 0, "GPU platform index")
	fl.StringVarP(&f.searchConfig, "config", "c", "", "Search config YAML; flags override it")
	root.PersistentFlags().StringVar(&f.appConfig, "app-config", "configs/app.yaml", "Application config YAML")

	root.AddCommand(f.verifyCommand())
	return root
}

func (f *flags) loadApp(cmd *cobra.Command) *appcfg.Config {
	appConf, err := appcfg.Load(f.appConfig)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || cmd.Flags().Changed("app-config") {
			fmt.Fprintf(cmd.ErrOrStderr(), "load app config: %v (using defaults)\n", err)
		}
		appConf = appcfg.Defaults()
	}
	return appConf
}

// searchConfigFrom merges the optional YAML file with the flags the user set.
func (f *flags) searchConfigFrom(cmd *cobra.Command) (config.SearchConfig, error) {
	if f.searchConfig == "" {
		return f.search, nil
	}
	cfg, err := config.Load(f.searchConfig)
	if err != nil {
		return cfg, err
	}

	fl := cmd.Flags()
	if fl.Changed("regex") {
		cfg.Pattern = f.search.Pattern
	}
	if fl.Changed("words") {
		cfg.Words = f.search.Words
	}
	if fl.Changed("threads") {
		cfg.Threads = f.search.Threads
	}
	if fl.Changed("webhook") {
		cfg.Webhook = f.search.Webhook
	}
	if fl.Changed("benchmark") {
		cfg.Benchmark = f.search.Benchmark
	}
	if fl.Changed("gpu") {
		cfg.GPU = f.search.GPU
	}
	if fl.Changed("gpu-platform") {
		cfg.GPUPlatform = f.search.GPUPlatform
	}
	return cfg, nil
}

func (f *flags) run(cmd *cobra.Command) error {
	appConf := f.loadApp(cmd)
	if err := logx.Init(logx.Config{
		Level:                appConf.LogLevel,
		FilePath:             appConf.LogFile,
		HideSecretsInConsole: appConf.HideSecretsInConsole,
	}); err != nil {
		return fmt.Errorf("log init: %w", err)
	}
	defer logx.Close()

	search, err := f.searchConfigFrom(cmd)
	if err != nil {
		return err
	}
	if err := search.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opt := generator.Options{
		Search:           search,
		Lang:             appConf.Language,
		Out:              cmd.OutOrStdout(),
		ProgressInterval: appConf.ProgressInterval,
	}
	if search.Webhook != "" {
		opt.Notifier = notify.NewWebhook(search.Webhook, appConf.WebhookTimeout)
	}
	if appConf.MetricsAddr != "" {
		opt.Metrics = metrics.New()
		go func() {
			if err := opt.Metrics.Serve(ctx, appConf.MetricsAddr); err != nil {
				logx.S().Warnw("metrics server stopped", "addr", appConf.MetricsAddr, "err", err)
			}
		}()
	}

	err = generator.Run(ctx, opt)
	if generator.IsShutdown(err) {
		logx.S().Infow("interrupted, bye")
		return nil
	}
	return err
}

func (f *flags) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <mnemonic words...>",
		Short: "Print the address a mnemonic derives to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs := i18n.Get(f.loadApp(cmd).Language)

			cred, err := mnemonic.Recover(strings.Join(args, " "))
			if err != nil {
				return err
			}
			addr, err := crypto.DeriveAddress(cred.PublicKey)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), msgs.Verify, mnemonic.AccountPath, addr)
			return nil
		},
	}
}

// Execute runs the root command with ctx and returns its error.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
