package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mailmerge %s\n", Version)
			if GitCommit != "" {
				fmt.Fprintf(out, "  Commit: %s\n", GitCommit)
			}
			if BuildDate != "" {
				fmt.Fprintf(out, "  Built:  %s\n", BuildDate)
			}
		},
	}
}
