package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// no config needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "captmoose version %s\n", a.build.Version)
			fmt.Fprintf(out, "  built:  %s\n", a.build.BuildTime)
			fmt.Fprintf(out, "  commit: %s\n", a.build.GitCommit)
			return nil
		},
	}
}
