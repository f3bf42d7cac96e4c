package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/blobstore"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// filePermissions is the mode for written Markdown files.
const filePermissions = 0o644

// runConvert orchestrates the convert command.
func runConvert(positional []string, flags *convertFlags, deps *Dependencies) error {
	cfg, err := loadConfigForFlags(flags)
	if err != nil {
		return err
	}
	applyEnvConfig(deps.Getenv, cfg)
	mergeFlags(flags, cfg)

	if len(positional) == 0 {
		return fmt.Errorf("%w: pass a URL, a file path, or - for stdin", ErrNoInput)
	}

	// Cancel in-flight fetches and uploads on Ctrl-C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts, err := buildOptions(ctx, cfg)
	if err != nil {
		return err
	}

	conv, err := html2md.NewConverter(opts...)
	if err != nil {
		return err
	}

	input, err := resolveInput(positional[0], deps)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := conv.Convert(ctx, input)
	if err != nil {
		return withHint(err, cfg)
	}

	if err := writeOutput(cfg.Output.Path, result.Markdown, deps); err != nil {
		return err
	}

	if flags.common.verbose && !flags.common.quiet {
		fmt.Fprintf(deps.Stderr, "converted in %s, %d image(s) relocated\n",
			time.Since(start).Round(time.Millisecond), len(result.Images))
	}
	return nil
}

// buildOptions translates the effective config into converter options.
func buildOptions(ctx context.Context, cfg *Config) ([]html2md.Option, error) {
	var opts []html2md.Option

	if cfg.Fetch.Timeout != "" {
		d, err := time.ParseDuration(cfg.Fetch.Timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %q (use a Go duration like 30s or 2m)",
				ErrInvalidTimeout, cfg.Fetch.Timeout)
		}
		opts = append(opts, html2md.WithFetchTimeout(d))
	}
	if cfg.Fetch.UserAgent != "" {
		opts = append(opts, html2md.WithUserAgent(cfg.Fetch.UserAgent))
	}
	if cfg.Images.KeepUnresolved {
		opts = append(opts, html2md.WithKeepUnresolvedImages())
	}

	if cfg.Images.Enabled {
		storeCfg := blobstore.Config{
			Endpoint:        cfg.Blob.Endpoint,
			AccessKey:       cfg.Blob.AccessKey,
			SecretKey:       cfg.Blob.SecretKey,
			Bucket:          cfg.Blob.Bucket,
			UseTLS:          !cfg.Blob.NoTLS,
			PublicURLPrefix: cfg.Blob.PublicURLPrefix,
		}
		store, err := blobstore.NewMinioStore(storeCfg)
		if err != nil {
			return nil, err
		}
		if cfg.Images.EnsureBucket {
			if err := store.EnsureBucket(ctx); err != nil {
				return nil, fmt.Errorf("%w%s", err, hints.ForBlobConnect(cfg.Blob.Endpoint))
			}
		}
		opts = append(opts, html2md.WithBlobStore(store))
	}

	return opts, nil
}

// resolveInput routes the positional argument to the right input variant:
// URL, stdin, or file.
func resolveInput(arg string, deps *Dependencies) (html2md.Input, error) {
	switch {
	case arg == "-":
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return html2md.Input{}, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return html2md.Input{Data: data}, nil
	case fileutil.IsURL(arg):
		return html2md.Input{URL: arg}, nil
	default:
		data, err := os.ReadFile(arg)
		if err != nil {
			return html2md.Input{}, fmt.Errorf("%w: %s: %v", ErrReadInput, arg, err)
		}
		return html2md.Input{Data: data}, nil
	}
}

// writeOutput writes the Markdown to the configured destination.
func writeOutput(path, markdown string, deps *Dependencies) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(deps.Stdout, markdown+"\n")
		return err
	}
	if err := os.WriteFile(path, []byte(markdown+"\n"), filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v%s", ErrWriteOutput, path, err, hints.ForOutputDirectory())
	}
	return nil
}

// withHint appends an actionable hint to conversion errors where one exists.
func withHint(err error, cfg *Config) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, html2md.ErrFetch):
		return fmt.Errorf("%w%s", err, hints.ForFetch())
	case errors.Is(err, html2md.ErrUpload), errors.Is(err, html2md.ErrStoreConnect):
		return fmt.Errorf("%w%s", err, hints.ForBlobConnect(cfg.Blob.Endpoint))
	default:
		return err
	}
}
