// Package commands implements the miot-lang command-line surface.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/catalog"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/langfile"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/miotspec"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/trace"
)

// Exit codes of the generate pipeline.
const (
	exitSuccess = 0
	exitUsage   = 2
	exitFetch   = 3
	exitSave    = 4
	exitRead    = 5
)

// Environment overrides, loaded from the process environment or an
// optional .env file.
const (
	envBaseURL = "MIOT_SPEC_BASE_URL"
	envLang    = "MIOT_LANG"
)

// GenerateOptions configures the generate pipeline.
type GenerateOptions struct {
	URN     string
	Output  string // Empty means <normalized-urn>.<ext>
	File    string // Local instance document instead of HTTP fetch
	Lang    string
	Format  string
	Trace   string // CBOR trace file path
	Verbose bool
}

// RunGenerate fetches (or loads) an instance document, builds the mapping,
// prints the lang-file document to stdout, and saves it to a file.
func RunGenerate(args []string, stdout, stderr io.Writer) int {
	// Optional .env with MIOT_SPEC_BASE_URL / MIOT_LANG overrides.
	_ = godotenv.Load()

	opts, err := parseGenerateArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			PrintUsage(stdout)
			return exitSuccess
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if opts.URN == "" {
		PrintUsage(stderr)
		fmt.Fprintln(stderr, "Error: a device type URN is required.")
		return exitUsage
	}
	if opts.Lang == "" {
		opts.Lang = os.Getenv(envLang)
		if opts.Lang == "" {
			opts.Lang = "ru"
		}
	}

	format, err := langfile.ParseFormat(opts.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	runID := uuid.NewString()
	tracer, closeTrace, err := buildTracer(opts, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not open trace file %s: %v\n", opts.Trace, err)
		return exitSave
	}
	defer closeTrace()

	run := &generateRun{
		opts:   opts,
		format: format,
		logger: logger,
		tracer: tracer,
		runID:  runID,
	}
	return run.execute(stdout, stderr)
}

// generateRun carries the resolved configuration through the pipeline.
type generateRun struct {
	opts   GenerateOptions
	format langfile.Format
	logger *slog.Logger
	tracer trace.Logger
	runID  string
}

func (r *generateRun) execute(stdout, stderr io.Writer) int {
	doc, code := r.resolveDocument(stderr)
	if code != exitSuccess {
		return code
	}

	urn := miotspec.NormalizeURN(r.opts.URN)
	buildStart := time.Now()
	mapping := miotspec.BuildMapping(doc)
	langDoc := langfile.New(urn, r.opts.Lang, mapping)
	r.trace(trace.Event{
		Stage:    trace.StageBuild,
		Category: trace.CategoryResult,
		KeyCount: mapping.Len(),
		Elapsed:  time.Since(buildStart),
	})
	r.logger.Debug("mapping built", "urn", urn, "lang", r.opts.Lang, "keys", mapping.Len())

	// Best-effort console preview; the file write below is the one that
	// decides success.
	_ = langfile.Encode(stdout, langDoc, r.format)

	outPath := r.opts.Output
	if outPath == "" {
		outPath = langfile.DefaultPath(langDoc, r.format)
	}
	saveStart := time.Now()
	if err := langfile.Save(outPath, langDoc, r.format); err != nil {
		fmt.Fprintf(stderr, "Error: could not save %s: %v\n", outPath, err)
		r.trace(trace.Event{
			Stage:    trace.StageSave,
			Category: trace.CategoryError,
			Path:     outPath,
			Error:    err.Error(),
		})
		return exitSave
	}
	r.trace(trace.Event{
		Stage:    trace.StageSave,
		Category: trace.CategoryResult,
		Path:     outPath,
		Elapsed:  time.Since(saveStart),
	})

	fmt.Fprintf(stdout, "Saved to %s\n", outPath)
	return exitSuccess
}

// resolveDocument loads the instance document from the local file when one
// was given, otherwise fetches it from the catalog.
func (r *generateRun) resolveDocument(stderr io.Writer) (any, int) {
	if r.opts.File != "" {
		r.trace(trace.Event{
			Stage:    trace.StageParse,
			Category: trace.CategoryRequest,
			Path:     r.opts.File,
		})
		doc, err := catalog.LoadInstanceFile(r.opts.File)
		if err != nil {
			fmt.Fprintf(stderr, "Error: could not read specification file: %v\n", err)
			r.trace(trace.Event{
				Stage:    trace.StageParse,
				Category: trace.CategoryError,
				Path:     r.opts.File,
				Error:    err.Error(),
			})
			return nil, exitRead
		}
		r.trace(trace.Event{
			Stage:    trace.StageParse,
			Category: trace.CategoryResult,
			Path:     r.opts.File,
		})
		return doc, exitSuccess
	}

	client := catalog.NewClient()
	client.Tracer = r.tracer
	client.RunID = r.runID
	if base := os.Getenv(envBaseURL); base != "" {
		client.BaseURL = base
	}
	r.logger.Debug("fetching instance", "urn", r.opts.URN, "endpoint", client.BaseURL)

	doc, err := client.FetchInstance(context.Background(), r.opts.URN)
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not fetch the device specification: %v\n", err)
		fmt.Fprintln(stderr, "Check the URN and your network connection.")
		return nil, exitFetch
	}
	return doc, exitSuccess
}

func (r *generateRun) trace(event trace.Event) {
	event.Timestamp = time.Now()
	event.RunID = r.runID
	r.tracer.Log(event)
}

// buildTracer assembles the trace logger chain for the run. The returned
// close function flushes the trace file, if any.
func buildTracer(opts GenerateOptions, logger *slog.Logger) (trace.Logger, func(), error) {
	var loggers []trace.Logger
	closeTrace := func() {}

	if opts.Verbose {
		loggers = append(loggers, trace.NewSlogAdapter(logger))
	}
	if opts.Trace != "" {
		fl, err := trace.NewFileLogger(opts.Trace)
		if err != nil {
			return nil, closeTrace, err
		}
		closeTrace = func() { fl.Close() }
		loggers = append(loggers, fl)
	}

	switch len(loggers) {
	case 0:
		return trace.NoopLogger{}, closeTrace, nil
	case 1:
		return loggers[0], closeTrace, nil
	default:
		return trace.NewMultiLogger(loggers...), closeTrace, nil
	}
}

func parseGenerateArgs(args []string) (GenerateOptions, error) {
	fs := flag.NewFlagSet("miot-lang", flag.ContinueOnError)
	opts := GenerateOptions{}

	fs.StringVar(&opts.Output, "o", "", "Output file (default: <normalized-urn>.<ext>)")
	fs.StringVar(&opts.Output, "output", "", "Output file")
	fs.StringVar(&opts.File, "f", "", "Local JSON specification file instead of a catalog fetch")
	fs.StringVar(&opts.File, "file", "", "Local JSON specification file")
	fs.StringVar(&opts.Lang, "l", "", "Language key for the lang file (default: ru, env MIOT_LANG)")
	fs.StringVar(&opts.Lang, "lang", "", "Language key for the lang file")
	fs.StringVar(&opts.Format, "format", "json", "Output format (json, yaml)")
	fs.StringVar(&opts.Trace, "trace", "", "Write a CBOR run trace to this file")
	fs.BoolVar(&opts.Verbose, "v", false, "Debug logging to stderr")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Debug logging to stderr")

	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	remaining := fs.Args()
	if len(remaining) > 0 {
		opts.URN = remaining[0]
	}

	return opts, nil
}

// PrintUsage writes the command usage to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, `miot-lang - MIoT specification to lang-file mapping generator

Usage:
  miot-lang [options] <urn>

Options:
  -o, --output   Output file (default: <normalized-urn>.<ext>)
  -f, --file     Use a local JSON specification file instead of the catalog
  -l, --lang     Language key for the lang file (default: ru, env MIOT_LANG)
      --format   Output format: json or yaml [default: json]
      --trace    Write a CBOR run trace to this file
  -v, --verbose  Debug logging to stderr
  -h, --help     Show this help message
      --version  Show version information

Examples:
  miot-lang urn:miot-spec-v2:device:health-pot:0000A051:chunmi-a1:1
  miot-lang -l en -o health-pot.json urn:miot-spec-v2:device:health-pot:0000A051:chunmi-a1
  miot-lang -f instance.json --format yaml urn:miot-spec-v2:device:health-pot:0000A051:chunmi-a1

Exit codes:
  0  success
  2  missing or invalid arguments
  3  specification fetch failed
  4  output file could not be written
  5  local specification file could not be read`)
}
