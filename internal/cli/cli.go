package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Workspaces *WorkspacesCommand
	Analyze    *AnalyzeCommand
	Estimate   *EstimateCommand
	History    *HistoryCommand
	Track      *TrackCommand
	Projects   *ProjectsCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "cursorstats"
	parser.LongDescription = "Analyze Cursor AI chat history: prompt statistics, time estimates, reports, and manual time tracking."

	cmds := &commands{
		Workspaces: &WorkspacesCommand{globals: &globals, version: version},
		Analyze:    &AnalyzeCommand{globals: &globals, version: version},
		Estimate:   &EstimateCommand{globals: &globals, version: version},
		History:    &HistoryCommand{globals: &globals, version: version},
		Track:      &TrackCommand{globals: &globals, version: version},
		Projects:   &ProjectsCommand{globals: &globals, version: version},
	}

	parser.AddCommand("workspaces", "List Cursor workspaces", "List Cursor workspaces found under workspaceStorage, with database availability.", cmds.Workspaces)
	parser.AddCommand("analyze", "Analyze prompts and write a report", "Extract AI prompts from Cursor workspace databases, compute statistics and time estimates, and write a Markdown report plus charts.", cmds.Analyze)
	parser.AddCommand("estimate", "Estimate hours from file activity", "Estimate hours worked in a project directory from file modification times grouped into sessions.", cmds.Estimate)
	parser.AddCommand("history", "Show archive statistics", "Show statistics about the local prompt archive built up by analyze --archive.", cmds.History)
	parser.AddCommand("track", "Open the interactive time tracker", "Open the interactive tracker: projects, a manual timer, and prompt logging.", cmds.Track)
	parser.AddCommand("projects", "Print tracked project statistics", "Print per-project statistics from the tracker data without opening the interactive screen.", cmds.Projects)

	return parser, &globals, cmds
}

// Run is the main entry point for the cursorstats CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("cursorstats %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
