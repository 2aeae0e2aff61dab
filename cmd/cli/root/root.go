package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "fundflow",
	Short: "FundFlow crowdfunding CLI",
	Long:  "Command line interface for interacting with the FundFlow crowdfunding API",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command for registering subcommands.
func GetRoot() *cobra.Command {
	return RootCmd
}
