package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/fbstore/cmd/fb"
	"github.com/ValentinKolb/fbstore/cmd/serve"
	"github.com/ValentinKolb/fbstore/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "fbstore",
		Short: "offline-first dashboard feedback store",
		Long: fmt.Sprintf(`fbstore (v%s)

An offline-first store for dashboard feedback (comments and ratings on pages
and page elements). Feedback is kept locally and synchronized on a best-effort
basis with a remote feedback service. fbstore also ships a reference
implementation of that service.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fbstore",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fbstore v%s\n", Version)
		},
	}
)

func init() {
	// load .env files and environment variables
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(fb.FeedbackCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("Level at which logs will be written to stderr (debug, info, warn, error)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
