package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"

	"kycaml/internal/compliance/metrics"
	"kycaml/internal/platform/config"
	"kycaml/internal/platform/logger"
	"kycaml/internal/review"
	"kycaml/pkg/platform/sentinel"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// main wires config, logging and metrics around a single batch review. The
// interpretation rules live in internal/compliance.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kycaml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional config file (yaml, json, toml or .env)")
	format := fs.String("format", formatJSON, "output format: json or text")
	envelope := fs.Bool("envelope", false, "records wrap the payload as kycAMLChecks.northCapital")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: kycaml [flags] [file...]")
		fmt.Fprintln(stderr, "Reads compliance payloads from files (or stdin) and reports clearance and disapproval reasons.")
		fs.PrintDefaults()
		fmt.Fprintln(stderr, config.Usage())
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *format != formatJSON && *format != formatText {
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	if flagSet(fs, "envelope") {
		cfg.Review.Envelope = *envelope
	}

	log := logger.NewWithWriter(stderr, cfg.Log)

	records, err := readInputs(fs.Args(), stdin)
	if err != nil {
		log.Error("failed to read records", "error", err)
		return exitError
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	svc, err := review.New(
		review.WithLogger(log),
		review.WithMetrics(m),
		review.WithConcurrency(cfg.Review.Concurrency),
		review.WithEnvelope(cfg.Review.Envelope),
	)
	if err != nil {
		log.Error("failed to build review service", "error", err)
		return exitError
	}

	reports, err := svc.Review(ctx, records)
	if err != nil {
		log.Error("review failed", "error", err)
		return exitError
	}

	if err := render(stdout, *format, reports); err != nil {
		log.Error("failed to write reports", "error", err)
		return exitError
	}

	if cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, registry); err != nil {
			log.Error("failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
			return exitError
		}
	}

	return exitOK
}

// readInputs concatenates records from every path, "-" meaning stdin. With no
// paths it reads stdin.
func readInputs(paths []string, stdin io.Reader) ([]json.RawMessage, error) {
	if len(paths) == 0 {
		return review.ReadRecords(stdin)
	}

	var all []json.RawMessage
	for _, path := range paths {
		records, err := readPath(path, stdin)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, records...)
	}
	return all, nil
}

func readPath(path string, stdin io.Reader) ([]json.RawMessage, error) {
	if path == "-" {
		return review.ReadRecords(stdin)
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return review.ReadRecords(f)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
