package main

import (
	"fmt"
	"os"

	"github.com/agnivade/levenshtein"

	"github.com/erraggy/annodoc"
	"github.com/erraggy/annodoc/cmd/annodoc/commands"
)

// commandNames lists the commands offered as suggestions for typos.
var commandNames = []string{"scan", "check", "langs", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("annodoc v%s\n", annodoc.Version())
		if len(args) > 0 && args[0] == "--long" {
			fmt.Println(annodoc.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "scan":
		err = commands.HandleScan(args)
	case "check":
		err = commands.HandleCheck(args)
	case "langs":
		err = commands.HandleLangs(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein.ComputeDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func printUsage() {
	fmt.Println(`annodoc - API documentation from annotation comments

Usage:
  annodoc <command> [options]

Commands:
  scan        Extract, check, and merge annotations from source trees
  check       Check the annotation blocks of one source file
  langs       List supported languages and encodings
  mcp         Serve annodoc tools over the Model Context Protocol (stdio)
  version     Show version information (--long for build details)
  help        Show this help message

Examples:
  annodoc scan ./api
  annodoc scan --strict --format json -o apidoc.json ./api
  annodoc scan --exts .go,.rs --collision merge ./src
  annodoc check api/users.go
  annodoc langs --format json

Run 'annodoc <command> --help' for more information on a command.`)
}
