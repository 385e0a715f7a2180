package serve

import (
	"strings"
	"time"

	cmdUtil "github.com/ValentinKolb/fbstore/cmd/util"
	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/ValentinKolb/fbstore/rpc/server"
	"github.com/ValentinKolb/fbstore/rpc/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the feedback service",
		Long:    `Start the reference feedback service with the specified configuration. The service speaks the same protocol as the spreadsheet backend used by dashboards. The configuration can be set via command line flags or environment variables. The format of the environment variables is FBSTORE_<flag> (e.g. FBSTORE_ROW_STORE=sqlite)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:8080)"))

	key = "path"
	ServeCmd.PersistentFlags().String(key, "/feedback", cmdUtil.WrapString("The route of the feedback resource"))

	key = "allowed-origins"
	ServeCmd.PersistentFlags().String(key, "*", cmdUtil.WrapString("Comma-separated list of origins allowed to call the API from a browser"))

	key = "row-store"
	ServeCmd.PersistentFlags().String(key, "sqlite", cmdUtil.WrapString("Storage of the feedback table (memory, sqlite)"))

	key = "data-dir"
	ServeCmd.PersistentFlags().String(key, "data", cmdUtil.WrapString("Directory of the sqlite database"))

	key = "default-source"
	ServeCmd.PersistentFlags().String(key, feedback.DefaultSource, cmdUtil.WrapString("Source tag written into rows that are appended without one"))

	key = "stats-interval"
	ServeCmd.PersistentFlags().Duration(key, 5*time.Minute, cmdUtil.WrapString("Interval at which request timings are logged (0 disables it)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.Path = viper.GetString("path")
	serveCmdConfig.RowStore = viper.GetString("row-store")
	serveCmdConfig.DataDir = viper.GetString("data-dir")
	serveCmdConfig.DefaultSource = viper.GetString("default-source")
	serveCmdConfig.StatsInterval = viper.GetDuration("stats-interval")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	// parse allowed origins
	serveCmdConfig.AllowedOrigins = []string{}
	for _, origin := range strings.Split(viper.GetString("allowed-origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			serveCmdConfig.AllowedOrigins = append(serveCmdConfig.AllowedOrigins, origin)
		}
	}

	if !strings.HasPrefix(serveCmdConfig.Path, "/") {
		serveCmdConfig.Path = "/" + serveCmdConfig.Path
	}

	return common.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the feedback service
func run(_ *cobra.Command, _ []string) error {
	rows, err := server.NewRowStore(*serveCmdConfig)
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		http.NewHttpServerTransport(),
		rows,
	)
	defer serv.Close()

	return serv.Serve()
}
