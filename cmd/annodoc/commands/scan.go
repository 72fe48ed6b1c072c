package commands

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/erraggy/annodoc"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/internal/config"
	"github.com/erraggy/annodoc/scanner"
)

// ScanFlags contains flags for the scan command
type ScanFlags struct {
	Strict          bool
	StrictPaths     bool
	Workers         int
	Collision       string
	CollisionReport bool
	Format          string
	Output          string
	Exts            string
	Lang            string
	Encoding        string
	NoRecursive     bool
	NoWarnings      bool
	Config          string
	Verbose         bool
}

// SetupScanFlags creates and configures a FlagSet for the scan command.
// Returns the FlagSet and a ScanFlags struct with bound flag variables.
func SetupScanFlags() (*flag.FlagSet, *ScanFlags) {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	flags := &ScanFlags{}

	fs.BoolVar(&flags.Strict, "strict", false, "stop at the first broken annotation and exit 1")
	fs.BoolVar(&flags.StrictPaths, "strict-paths", false, "reject paths containing '?', '#', whitespace, or '//'")
	fs.IntVar(&flags.Workers, "workers", 0, "number of files processed at once (0 = number of CPUs)")
	fs.StringVar(&flags.Collision, "collision", "", "collision strategy: accept-right, accept-left, fail, merge, deduplicate")
	fs.BoolVar(&flags.CollisionReport, "collision-report", false, "print every collision and how it was resolved")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "output", "", "write the document to a file instead of stdout")
	fs.StringVar(&flags.Output, "o", "", "write the document to a file instead of stdout")
	fs.StringVar(&flags.Exts, "exts", "", "comma separated extensions to scan, e.g. .go,.rs (default: all known)")
	fs.StringVar(&flags.Lang, "lang", "", "force a language instead of detecting it from extensions")
	fs.StringVar(&flags.Encoding, "encoding", "", "source encoding, e.g. gbk or shift_jis (default utf-8)")
	fs.BoolVar(&flags.NoRecursive, "no-recursive", false, "do not descend into subdirectories")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress documentation warnings")
	fs.StringVar(&flags.Config, "config", "", "project file (default: "+config.FileName+" in the current directory or a parent, when no paths are given)")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose logging to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose logging to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: annodoc scan [flags] <dir|file>...\n\n")
		Writef(fs.Output(), "Extract API documentation from annotation comments.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable summary\n")
		Writef(fs.Output(), "  json            The full document as JSON\n")
		Writef(fs.Output(), "  yaml            The full document as YAML\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  annodoc scan ./api\n")
		Writef(fs.Output(), "  annodoc scan --strict --format json -o apidoc.json ./api\n")
		Writef(fs.Output(), "  annodoc scan --exts .go,.rs --workers 8 ./src ./lib\n")
		Writef(fs.Output(), "  annodoc scan --encoding gbk --lang java ./legacy\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Scan completed (diagnostics are listed, not fatal)\n")
		Writef(fs.Output(), "  1    Invalid usage, or a failure in strict mode\n")
	}

	return fs, flags
}

// scanSettings is the merge of the project file and the command line.
type scanSettings struct {
	inputs      []extract.Input
	strict      bool
	strictPaths bool
	workers     int
	collision   string
	warnings    bool
	mimetypes   map[string]string
	format      string
	outputPath  string
}

// HandleScan executes the scan command
func HandleScan(args []string) error {
	fs, flags := SetupScanFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// Validate flags early to fail fast before touching the file system
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if err := ValidateCollisionStrategy(flags.Collision); err != nil {
		return err
	}
	if flags.Workers < 0 {
		return fmt.Errorf("invalid workers %d: must not be negative", flags.Workers)
	}

	settings, err := resolveScanSettings(fs, flags)
	if err != nil {
		return err
	}
	if len(settings.inputs) == 0 {
		fs.Usage()
		return fmt.Errorf("scan command requires at least one file or directory, or inputs in %s", config.FileName)
	}

	opts := []scanner.Option{
		scanner.WithInputs(settings.inputs...),
		scanner.WithStrictMode(settings.strict),
		scanner.WithStrictPaths(settings.strictPaths),
		scanner.WithWorkers(settings.workers),
		scanner.WithCollisionStrategy(settings.collision),
		scanner.WithIncludeWarnings(settings.warnings),
		scanner.WithCollisionReport(flags.CollisionReport),
		scanner.WithLogger(scanner.NewSlogAdapter(NewLogger(flags.Verbose))),
	}
	if len(settings.mimetypes) > 0 {
		opts = append(opts, scanner.WithMimetypeAliases(settings.mimetypes))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := scanner.ScanWithOptions(ctx, opts...)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var out []byte
	if settings.format == FormatText {
		out = renderScanText(result)
	} else if out, err = MarshalStructured(result.Document, settings.format); err != nil {
		return err
	}
	if err := WriteOutput(settings.outputPath, out); err != nil {
		return err
	}
	if flags.CollisionReport && settings.format != FormatText {
		renderCollisions(stderr, result)
	}
	return nil
}

// resolveScanSettings loads the project file, if any, and lets flags that
// were set explicitly override it.
func resolveScanSettings(fs *flag.FlagSet, flags *ScanFlags) (*scanSettings, error) {
	c := config.Default()
	path := flags.Config
	if path == "" && fs.NArg() == 0 {
		path, _ = config.Find(".")
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	s := &scanSettings{
		inputs:      c.ExtractInputs(),
		strict:      c.Strict,
		strictPaths: c.StrictPaths,
		workers:     c.Workers,
		collision:   string(c.Collision),
		warnings:    c.Warnings,
		mimetypes:   c.Mimetypes,
		format:      c.Output.Format,
		outputPath:  c.Output.Path,
	}
	if set["strict"] {
		s.strict = flags.Strict
	}
	if set["strict-paths"] {
		s.strictPaths = flags.StrictPaths
	}
	if set["workers"] {
		s.workers = flags.Workers
	}
	if set["collision"] && flags.Collision != "" {
		s.collision = flags.Collision
	}
	if set["no-warnings"] {
		s.warnings = !flags.NoWarnings
	}
	if set["format"] {
		s.format = flags.Format
	}
	if set["output"] || set["o"] {
		s.outputPath = flags.Output
	}

	if fs.NArg() > 0 {
		s.inputs = make([]extract.Input, 0, fs.NArg())
		for _, arg := range fs.Args() {
			s.inputs = append(s.inputs, extract.Input{
				Path:      arg,
				Recursive: !flags.NoRecursive,
				Exts:      ParseList(flags.Exts),
				Lang:      flags.Lang,
				Encoding:  flags.Encoding,
			})
		}
	}
	return s, nil
}

func renderScanText(result *scanner.ScanResult) []byte {
	var buf bytes.Buffer
	doc := result.Document
	stats := result.Stats

	Writef(&buf, "annodoc version: %s\n", annodoc.Version())
	Writef(&buf, "Files: %d\n", stats.Files)
	Writef(&buf, "Annotations: %d\n", stats.Annotations)
	Writef(&buf, "Operations: %d\n", stats.Operations)
	Writef(&buf, "Errors: %d\n", stats.Errors)
	Writef(&buf, "Warnings: %d\n", stats.Warnings)
	Writef(&buf, "Scan Time: %v\n\n", result.Duration)

	if len(doc.Operations) > 0 {
		Writef(&buf, "Operations (%d):\n", len(doc.Operations))
		tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		for _, op := range doc.Operations {
			Writef(tw, "  %s\t%s\t%s\t%s:%d\n", op.Method, op.Path.Raw, op.Summary, op.Source.File, op.Source.Line)
		}
		_ = tw.Flush()
		Writef(&buf, "\n")
	}
	if len(doc.Diagnostics) > 0 {
		Writef(&buf, "Diagnostics (%d):\n", len(doc.Diagnostics))
		for _, d := range doc.Diagnostics {
			Writef(&buf, "  %s\n", d.String())
		}
		Writef(&buf, "\n")
	}
	if result.Collisions != nil {
		renderCollisions(&buf, result)
	}
	return buf.Bytes()
}

func renderCollisions(w io.Writer, result *scanner.ScanResult) {
	report := result.Collisions
	if report == nil {
		return
	}
	Writef(w, "Collisions (%d):\n", report.TotalCollisions)
	for _, e := range report.Events {
		Writef(w, "  %s: %s, kept %s\n", e.Key, e.Resolution, e.Kept)
		for _, src := range e.Sources {
			Writef(w, "    - %s\n", src)
		}
	}
}
