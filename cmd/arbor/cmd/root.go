// Package cmd implements the arbor CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (render, layout, demos).
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-drift/arbor/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "arbor",
	Short: "arbor - retained widget trees with resumable layout",
	Long: `arbor builds retained widget trees, lays them out with a resumable
constraint protocol and renders them to images.

Use "arbor <command> --help" for more information about a command.`,
	Usage: "arbor <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

// globalAction is what the leading global flags asked for.
type globalAction int

const (
	actionCommand globalAction = iota
	actionHelp
	actionVersion
)

// stripGlobals removes --verbose anywhere in args and reports a help or
// version request that precedes the command name.
func stripGlobals(args []string) ([]string, globalAction) {
	rest := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--verbose" {
			errors.SetHandler(&errors.LogHandler{Verbose: true})
			continue
		}
		if len(rest) == 0 {
			switch arg {
			case "-h", "--help", "help":
				return nil, actionHelp
			case "-v", "--version", "version":
				return nil, actionVersion
			}
		}
		rest = append(rest, arg)
	}
	if len(rest) == 0 {
		return nil, actionHelp
	}
	return rest, actionCommand
}

func run(args []string) error {
	args, action := stripGlobals(args)
	switch action {
	case actionHelp:
		printHelp(rootCmd)
		return nil
	case actionVersion:
		fmt.Fprintf(stdout, "arbor version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", args[0])
	}
	for _, arg := range args[1:] {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(cmd)
			return nil
		}
	}
	return cmd.Run(args[1:])
}

const globalFlags = `Flags:
  -h, --help	Show help for a command
  -v, --version	Show version information
  --verbose	Print stack traces with errors
`

const examples = `Examples:
  arbor render --app calculator --out calc.png
  arbor layout --app flextext --width 640 --height 480
  arbor demos
`

func printHelp(cmd *Command) {
	fmt.Fprintf(stdout, "%s\n\nUsage:\n  %s\n\nCommands:\n", cmd.Long, cmd.Usage)
	tw := tabwriter.NewWriter(stdout, 0, 4, 3, ' ', 0)
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(tw)
	fmt.Fprint(tw, globalFlags)
	tw.Flush()
	fmt.Fprintf(stdout, "\n%s", examples)
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintf(stdout, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.Usage)
}

// flagValue returns the value of a "--name value" or "--name=value" flag
// at args[i], and how many extra arguments it consumed.
func flagValue(args []string, i int, name string) (string, int, bool, error) {
	arg := args[i]
	if value, ok := strings.CutPrefix(arg, name+"="); ok {
		return value, 0, true, nil
	}
	if arg != name {
		return "", 0, false, nil
	}
	if i+1 >= len(args) {
		return "", 0, true, fmt.Errorf("%s requires a value", name)
	}
	return args[i+1], 1, true, nil
}
