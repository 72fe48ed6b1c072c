package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/annodoc/dialect"
	"github.com/erraggy/annodoc/extract"
	"github.com/erraggy/annodoc/model"
	"github.com/erraggy/annodoc/scanner"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Lang        string
	Encoding    string
	StrictPaths bool
	NoWarnings  bool
	Format      string
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.StringVar(&flags.Lang, "lang", "", "force a language instead of detecting it from the extension")
	fs.StringVar(&flags.Encoding, "encoding", "", "source encoding (default utf-8)")
	fs.BoolVar(&flags.StrictPaths, "strict-paths", false, "reject paths containing '?', '#', whitespace, or '//'")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress documentation warnings")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: annodoc check [flags] <file>\n\n")
		Writef(fs.Output(), "Check every annotation block of one source file.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  annodoc check api/users.go\n")
		Writef(fs.Output(), "  annodoc check --lang php --format json handlers.inc\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Every annotation block is valid\n")
		Writef(fs.Output(), "  1    At least one block failed, or invalid usage\n")
	}

	return fs, flags
}

// BlockCheck is the outcome of checking one annotation block.
type BlockCheck struct {
	Line      int                `yaml:"line" json:"line"`
	Dialect   string             `yaml:"dialect" json:"dialect"`
	Operation *model.Operation   `yaml:"operation,omitempty" json:"operation,omitempty"`
	Error     *model.Diagnostic  `yaml:"error,omitempty" json:"error,omitempty"`
	Warnings  []model.Diagnostic `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// CheckReport is the outcome of the check command.
type CheckReport struct {
	File        string       `yaml:"file" json:"file"`
	Blocks      int          `yaml:"blocks" json:"blocks"`
	Annotations int          `yaml:"annotations" json:"annotations"`
	Failed      int          `yaml:"failed" json:"failed"`
	Results     []BlockCheck `yaml:"results,omitempty" json:"results,omitempty"`
}

// CheckFile extracts and checks the annotation blocks of path.
func CheckFile(path string, flags *CheckFlags) (*CheckReport, error) {
	src := &extract.FileSource{Path: path, Encoding: flags.Encoding}
	if flags.Lang != "" {
		lang, ok := extract.LookupLanguage(flags.Lang)
		if !ok {
			return nil, fmt.Errorf("unknown language '%s'", flags.Lang)
		}
		src.Lang = lang
	}
	if err := extract.CheckEncoding(flags.Encoding); err != nil {
		return nil, err
	}
	blocks, err := src.Blocks()
	if err != nil {
		return nil, err
	}

	s := scanner.New()
	s.StrictPaths = flags.StrictPaths
	s.IncludeWarnings = !flags.NoWarnings

	report := &CheckReport{File: path, Blocks: len(blocks)}
	for _, block := range blocks {
		kind := dialect.Detect(block.Text)
		if kind == dialect.KindNone {
			continue
		}
		report.Annotations++
		res := BlockCheck{Line: block.Line, Dialect: kind.String()}
		op, warnings, err := s.ProcessBlock(block)
		if err != nil {
			d := scanner.DiagnosticFor(err, block.File, block.Line)
			res.Error = &d
			report.Failed++
		} else {
			res.Operation = op
			res.Warnings = warnings
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one file")
	}

	report, err := CheckFile(fs.Arg(0), flags)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	var out []byte
	if flags.Format == FormatText {
		out = renderCheckText(report)
	} else if out, err = MarshalStructured(report, flags.Format); err != nil {
		return err
	}
	if err := WriteOutput("", out); err != nil {
		return err
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d annotation blocks failed", report.Failed, report.Annotations)
	}
	return nil
}

func renderCheckText(report *CheckReport) []byte {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d comment blocks, %d annotations\n", report.File, report.Blocks, report.Annotations)
	for _, res := range report.Results {
		if res.Error != nil {
			Writef(&buf, "  %s\n", res.Error.String())
			continue
		}
		Writef(&buf, "  ✓ %s:%d: %s (%s)\n", report.File, res.Line, res.Operation.Key(), res.Dialect)
		for _, w := range res.Warnings {
			Writef(&buf, "    %s\n", w.String())
		}
	}
	return buf.Bytes()
}
