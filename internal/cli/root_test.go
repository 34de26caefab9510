package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"VanityEth/internal/patterns"
	"VanityEth/pkg/config"
)

const abandon = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestVerify(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "app.yaml")
	out, err := execute(t, context.Background(),
		append([]string{"verify", "--app-config", missing}, strings.Fields(abandon)...)...)
	require.NoError(t, err)
	require.Equal(t, "Path: m/44'/60'/0'/0/0\nAddress: 0x9858EfFD232B4033E47d90003D41EC34EcaEda94\n", out)
}

func TestVerifyLocalized(t *testing.T) {
	app := writeFile(t, "app.yaml", "language: ru\n")
	out, err := execute(t, context.Background(), "verify", "--app-config", app, abandon)
	require.NoError(t, err)
	require.Contains(t, out, "Адрес: 0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
}

func TestVerifyRejectsBadMnemonic(t *testing.T) {
	_, err := execute(t, context.Background(), "verify", "abandon", "abandon")
	require.Error(t, err)

	_, err = execute(t, context.Background(), "verify")
	require.Error(t, err)
}

func TestInvalidSearchConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "app.yaml")

	_, err := execute(t, context.Background(), "--app-config", missing, "-t", "0")
	require.ErrorIs(t, err, config.ErrThreads)

	_, err = execute(t, context.Background(), "--app-config", missing, "-w", "18")
	require.ErrorIs(t, err, config.ErrWords)

	_, err = execute(t, context.Background(), "--app-config", missing, "-r", "(")
	require.ErrorIs(t, err, patterns.ErrPattern)

	_, err = execute(t, context.Background(), "--app-config", missing, "-W", "ftp://example.com")
	require.ErrorIs(t, err, config.ErrWebhook)

	_, err = execute(t, context.Background(), "--app-config", missing, "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFlagsOverrideSearchFile(t *testing.T) {
	search := writeFile(t, "search.yaml", "regex: '^0x dead'\nthreads: 3\nwords: 12\nbenchmark: true\n")

	f := &flags{search: config.Default()}
	cmd := newRootCommand(f)
	require.NoError(t, cmd.ParseFlags([]string{"-c", search, "-t", "2", "-W", "https://example.com/hook"}))

	cfg, err := f.searchConfigFrom(cmd)
	require.NoError(t, err)
	require.Equal(t, config.SearchConfig{
		Pattern:   "^0x dead",
		Words:     12,
		Threads:   2,
		Benchmark: true,
		Webhook:   "https://example.com/hook",
	}, cfg)
}

func TestFlagsWithoutSearchFile(t *testing.T) {
	f := &flags{search: config.Default()}
	cmd := newRootCommand(f)
	require.NoError(t, cmd.ParseFlags([]string{"-r", "beef$", "-w", "24", "--gpu", "--gpu-platform", "1"}))

	cfg, err := f.searchConfigFrom(cmd)
	require.NoError(t, err)
	require.Equal(t, "beef$", cfg.Pattern)
	require.Equal(t, 24, cfg.Words)
	require.Equal(t, config.Default().Threads, cfg.Threads)
	require.True(t, cfg.GPU)
	require.Equal(t, 1, cfg.GPUPlatform)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "app.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := execute(t, ctx, "--app-config", missing, "-r", "^0x dead", "-t", "1", "-w", "12")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Threads count: 1\nMatching regex: ^0x dead\nMnemonic words count: 12\n"), out)
}
