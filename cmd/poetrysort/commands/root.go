// Package commands implements the CLI commands for poetrysort.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/poetrysort/internal/app"
	"go.trai.ch/poetrysort/internal/build"
	"go.trai.ch/poetrysort/internal/core/domain"
)

// CLI represents the command line interface for poetrysort.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, paths []string, opts app.RunOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "poetrysort [flags] [pyproject.toml...]",
		Short: "Sort the dependency tables of Poetry manifests",
		Long: "poetrysort sorts tool.poetry.dependencies and tool.poetry.dev-dependencies\n" +
			"alphabetically, keeps python first and marks the sorted part with a comment.\n\n" +
			"Without arguments the nearest pyproject.toml above the working directory is used.\n" +
			"Exit status is 0 when everything was sorted, 1 when a table was reordered\n" +
			"and 2 when the tool failed.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRoot,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().BoolP("check", "n", false, "Report unsorted tables without rewriting files")
	rootCmd.Flags().StringP("config", "c", domain.ConfigFileName, "Path to the configuration file")
	rootCmd.Flags().Bool("json", false, "Write logs as JSON lines")
	rootCmd.Flags().IntP("jobs", "j", 0, "Number of manifests processed concurrently (0 means one per CPU)")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runRoot(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	configPath, _ := cmd.Flags().GetString("config")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	jobs, _ := cmd.Flags().GetInt("jobs")

	return c.app.Run(cmd.Context(), args, app.RunOptions{
		Check:      check,
		JSON:       jsonLogs,
		Jobs:       jobs,
		ConfigPath: configPath,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
