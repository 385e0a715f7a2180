package fb

import (
	"github.com/ValentinKolb/fbstore/cmd/util"
	"github.com/ValentinKolb/fbstore/lib/fbstore"
	"github.com/spf13/cobra"
)

var (
	store *fbstore.Store

	// FeedbackCommands represents the feedback command group
	FeedbackCommands = &cobra.Command{
		Use:                "fb",
		Short:              "Work with the local feedback store",
		Long:               `Read and write dashboard feedback. Reads are answered from the local cache. Writes are stored locally and sent to the remote feedback service (if configured) in the background; the command waits for them before it exits.`,
		PersistentPreRunE:  setupStore,
		PersistentPostRunE: closeStore,
	}
)

func init() {
	// Add store and remote client flags
	util.SetupStoreFlags(FeedbackCommands)

	// Add subcommands
	FeedbackCommands.AddCommand(listCmd)
	FeedbackCommands.AddCommand(addCmd)
	FeedbackCommands.AddCommand(resolveCmd)
	FeedbackCommands.AddCommand(reopenCmd)
	FeedbackCommands.AddCommand(syncCmd)
	FeedbackCommands.AddCommand(exportCmd)
	FeedbackCommands.AddCommand(countCmd)
	FeedbackCommands.AddCommand(roundsCmd)
	FeedbackCommands.AddCommand(pagesCmd)
	FeedbackCommands.AddCommand(elementsCmd)
}

// setupStore initializes the feedback store from the configuration
func setupStore(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	if err := util.InitLogging(); err != nil {
		return err
	}

	config := util.GetStoreConfig()
	fbstore.Logger.Debugf("%s", config.String())

	var err error
	store, err = fbstore.FromConfig(*config)
	return err
}

// closeStore waits for background writes and releases the store
func closeStore(_ *cobra.Command, _ []string) error {
	if store == nil {
		return nil
	}
	return store.Close()
}
