package commands

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"text/tabwriter"

	"github.com/erraggy/annodoc/extract"
)

// LanguageInfo describes one supported language.
type LanguageInfo struct {
	Name          string   `yaml:"name" json:"name"`
	Exts          []string `yaml:"exts" json:"exts"`
	LineComments  []string `yaml:"lineComments,omitempty" json:"lineComments,omitempty"`
	BlockComments []string `yaml:"blockComments,omitempty" json:"blockComments,omitempty"`
}

// LanguageList is the output of the langs command.
type LanguageList struct {
	Languages []LanguageInfo `yaml:"languages" json:"languages"`
	Encodings []string       `yaml:"encodings" json:"encodings"`
}

// ListLanguages returns the language table and the named encodings.
func ListLanguages() LanguageList {
	langs := extract.Languages()
	list := LanguageList{
		Languages: make([]LanguageInfo, 0, len(langs)),
		Encodings: extract.Encodings(),
	}
	for _, l := range langs {
		info := LanguageInfo{Name: l.Name, Exts: l.Exts, LineComments: l.LineComments}
		for _, d := range l.BlockComments {
			info.BlockComments = append(info.BlockComments, d.Begin+" "+d.End)
		}
		list.Languages = append(list.Languages, info)
	}
	return list
}

// HandleLangs executes the langs command
func HandleLangs(args []string) error {
	fs := flag.NewFlagSet("langs", flag.ContinueOnError)
	format := fs.String("format", FormatText, "output format: text, json, or yaml")
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: annodoc langs [flags]\n\n")
		Writef(fs.Output(), "List the languages and encodings annodoc can read.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(*format); err != nil {
		return err
	}

	list := ListLanguages()
	if *format != FormatText {
		out, err := MarshalStructured(list, *format)
		if err != nil {
			return err
		}
		return WriteOutput("", out)
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	Writef(tw, "LANGUAGE\tEXTENSIONS\tLINE\tBLOCK\n")
	for _, l := range list.Languages {
		Writef(tw, "%s\t%s\t%s\t%s\n", l.Name, strings.Join(l.Exts, " "), strings.Join(l.LineComments, " "), strings.Join(l.BlockComments, ", "))
	}
	_ = tw.Flush()
	Writef(&buf, "\nEncodings: %s\n", strings.Join(list.Encodings, ", "))
	return WriteOutput("", buf.Bytes())
}
