package main

import (
	"io"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	app        *app
}

func (o *rootOptions) close() {
	if o.app != nil {
		o.app.Close()
		o.app = nil
	}
}

// execute runs one command line and releases the store afterwards, whether
// or not the command failed.
func execute(args []string, out, errOut io.Writer) error {
	opts := &rootOptions{}
	defer opts.close()

	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "compass",
		Short: "A personal compass built on the time management matrix",
		Long: `compass keeps your mission, values, roles, goals, weekly Big Rocks
and daily A/B/C tasks, and tracks where your time goes across the four quadrants.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts.configPath)
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(
		newMissionCmd(opts),
		newTaskCmd(opts),
		newPlanCmd(opts),
		newWeekCmd(opts),
		newStreaksCmd(opts),
		newAchievementsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newSizeCmd(opts),
		newClearCmd(opts),
	)
	return rootCmd
}
