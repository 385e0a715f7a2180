package util

import (
	"strings"
	"time"

	"github.com/ValentinKolb/fbstore/rpc/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStoreFlags adds the flags of the local store and the remote client to a command
func SetupStoreFlags(cmd *cobra.Command) {
	key := "source"
	cmd.PersistentFlags().String(key, "fbstore", WrapString("Client tag written into the source field of new feedback"))

	key = "local-backend"
	cmd.PersistentFlags().String(key, "file", WrapString("Storage of the local feedback cache (file, memory, redis)"))

	key = "data-dir"
	cmd.PersistentFlags().String(key, ".fbstore", WrapString("Directory of the file backend"))

	key = "redis-addr"
	cmd.PersistentFlags().String(key, "localhost:6379", WrapString("Address of the redis server (redis backend only)"))

	key = "redis-db"
	cmd.PersistentFlags().Int(key, 0, WrapString("Redis database number (redis backend only)"))

	key = "serializer"
	cmd.PersistentFlags().String(key, "json", WrapString("Encoding of the local feedback cache (json, gob)"))

	key = "cache-ttl"
	cmd.PersistentFlags().Duration(key, 10*time.Second, WrapString("How long a snapshot fetched from the remote service is reused"))

	key = "sync-policy"
	cmd.PersistentFlags().String(key, "none", WrapString("How background writes to the remote service are attempted (none = once, retry = exponential backoff, breaker = retry behind a circuit breaker)"))

	key = "sync-attempts"
	cmd.PersistentFlags().Int(key, 3, WrapString("Maximum attempts of the retry and breaker sync policies"))

	key = "remote-endpoints"
	cmd.PersistentFlags().String(key, "", WrapString("URL of the remote feedback service. Multiple endpoints can be given as a comma-separated list and are used round-robin. Empty disables the remote side"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of a single request to the remote service"))

	key = "transport-attempts"
	cmd.PersistentFlags().Int(key, 1, WrapString("How many times the transport sends a request before giving up"))
}

// InitConfig initializes configuration from .env files and environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("fbstore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// InitLogging sets the level of all package loggers from the log-level flag
func InitLogging() error {
	return common.InitLoggers(viper.GetString("log-level"))
}

// GetStoreConfig reads the store configuration from viper
func GetStoreConfig() *common.StoreConfig {
	var endpoints []string
	for _, e := range strings.Split(viper.GetString("remote-endpoints"), ",") {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}

	return &common.StoreConfig{
		Source:       viper.GetString("source"),
		LocalBackend: viper.GetString("local-backend"),
		DataDir:      viper.GetString("data-dir"),
		RedisAddr:    viper.GetString("redis-addr"),
		RedisDB:      viper.GetInt("redis-db"),
		Serializer:   viper.GetString("serializer"),
		CacheTTL:     viper.GetDuration("cache-ttl"),
		SyncPolicy:   viper.GetString("sync-policy"),
		SyncAttempts: viper.GetInt("sync-attempts"),
		Client: common.ClientConfig{
			Endpoints:     endpoints,
			TimeoutSecond: viper.GetInt("timeout"),
			Attempts:      viper.GetInt("transport-attempts"),
		},
	}
}

// BindCommandFlags binds a command's flags (including inherited ones) to viper
func BindCommandFlags(cmd *cobra.Command) error {
	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return err
	}
	return viper.BindPFlags(cmd.Flags())
}
