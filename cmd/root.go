package cmd

import (
	"copyfiles/pkg/combine"
	"copyfiles/pkg/logging"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewRootCommand builds the copyfiles command. level is raised to Info when
// --verbose is set.
func NewRootCommand(logger *zap.Logger, level zap.AtomicLevel) *cobra.Command {
	settings := viper.New()

	rootCmd := &cobra.Command{
		Use:   "copyfiles",
		Short: "copyfiles bundles a project into a single document for LLM context",
		Long: `copyfiles scans a project, drops files matched by .gitignore, the built-in
defaults and an optional pattern file, and writes a tree plus every remaining
file into one Markdown document.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := loadArguments(settings, cmd.Flags())
			if err != nil {
				return err
			}
			level.SetLevel(logging.LevelFor(args.Verbose))

			report, err := combine.Execute(args, logger)
			if err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(),
				"copyfiles: wrote %s (%d files, %d bytes, %d skipped, %d truncated)\n",
				report.OutputPath, report.Kept, report.BytesWritten, len(report.Skipped), len(report.Truncated))
			return nil
		},
	}

	registerFlags(rootCmd.Flags())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute(logger *zap.Logger, level zap.AtomicLevel) error {
	return NewRootCommand(logger, level).Execute()
}
