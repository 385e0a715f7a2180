package fb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ValentinKolb/fbstore/cmd/util"
	"github.com/ValentinKolb/fbstore/lib/fbstore"
	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/spf13/cobra"
)

var (
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists feedback, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}
			entries := store.GetFeedback(filter)

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			printEntries(entries)
			return nil
		},
	}
	addCmd = &cobra.Command{
		Use:   "add [comment]",
		Short: "Adds feedback to a page or page element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := feedback.Fields{Comment: args[0]}
			fields.ID, _ = cmd.Flags().GetString("id")
			fields.PageID, _ = cmd.Flags().GetString("page")
			fields.ElementID, _ = cmd.Flags().GetString("element")
			fields.Round, _ = cmd.Flags().GetInt("round")
			fields.Author, _ = cmd.Flags().GetString("author")
			fields.Rating, _ = cmd.Flags().GetInt("rating")

			e, err := store.AddFeedback(fields)
			if err != nil {
				return err
			}
			fmt.Println(e.ID)
			return nil
		},
	}
	resolveCmd = &cobra.Command{
		Use:   "resolve [id]",
		Short: "Marks feedback as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store.UpdateStatus(args[0], feedback.StatusResolved)
			fmt.Println("resolved", args[0])
			return nil
		},
	}
	reopenCmd = &cobra.Command{
		Use:   "reopen [id]",
		Short: "Marks feedback as open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store.UpdateStatus(args[0], feedback.StatusOpen)
			fmt.Println("reopened", args[0])
			return nil
		},
	}
	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Replaces the local feedback with the remote feedback",
		Long:  `Fetches all feedback from the remote service and overwrites the local cache with it. Local feedback that never reached the remote service is lost. If the service can not be reached the local cache is left untouched.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("wait")
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if !store.SyncFromRemote(ctx) {
				return fmt.Errorf("no fresh data from the remote service, local feedback unchanged")
			}
			fmt.Printf("synced %d entries\n", store.Count())
			return nil
		},
	}
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Exports the local feedback as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := fbstore.ParseExportFormat(name)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "-" {
				return store.Export(os.Stdout, format)
			}
			if out == "" {
				out = format.DefaultFileName()
			}
			if err := store.ExportFile(out, format); err != nil {
				return err
			}
			fmt.Println("exported to", out)
			return nil
		},
	}
	countCmd = &cobra.Command{
		Use:   "count [pageId] [elementId]",
		Short: "Counts the feedback attached to a page element",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(store.GetElementCount(args[0], args[1]))
			return nil
		},
	}
	roundsCmd = &cobra.Command{
		Use:   "rounds",
		Short: "Prints the highest review round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(store.GetMaxRound())
			return nil
		},
	}
	pagesCmd = &cobra.Command{
		Use:   "pages",
		Short: "Lists all pages that have feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range store.GetAllPageIDs() {
				fmt.Println(id)
			}
			return nil
		},
	}
	elementsCmd = &cobra.Command{
		Use:   "elements",
		Short: "Lists all page elements that have feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range store.GetAllElementIDs() {
				fmt.Println(id)
			}
			return nil
		},
	}
)

func init() {
	// list
	listCmd.Flags().String("page", "", util.WrapString("Only feedback of this page"))
	listCmd.Flags().Int("round", 0, util.WrapString("Only feedback of this review round (0 = all)"))
	listCmd.Flags().String("element", "", util.WrapString("Only feedback of this page element"))
	listCmd.Flags().Bool("page-level", false, util.WrapString("Only feedback attached to a page, not to an element"))
	listCmd.Flags().String("status", "", util.WrapString("Only feedback with this status (open, resolved)"))
	listCmd.Flags().Bool("json", false, util.WrapString("Print the feedback as JSON"))

	// add
	addCmd.Flags().String("page", "", util.WrapString("Page the feedback belongs to"))
	addCmd.Flags().String("element", "", util.WrapString("Page element the feedback belongs to (empty = the whole page)"))
	addCmd.Flags().Int("round", 0, util.WrapString("Review round (default 1)"))
	addCmd.Flags().String("author", "", util.WrapString("Author of the feedback"))
	addCmd.Flags().Int("rating", 0, util.WrapString("Rating from 1 to 5 (default 3)"))
	addCmd.Flags().String("id", "", util.WrapString("Id of the new entry (generated if empty)"))

	// sync
	syncCmd.Flags().Duration("wait", 30*time.Second, util.WrapString("How long to wait for the remote service"))

	// export
	exportCmd.Flags().String("format", "csv", util.WrapString("Export format (csv, json)"))
	exportCmd.Flags().String("out", "", util.WrapString("Output file, - for stdout (default feedback.<format>)"))
}

// filterFromFlags builds the GetFeedback filter from the list flags
func filterFromFlags(cmd *cobra.Command) (fbstore.Filter, error) {
	var f fbstore.Filter
	f.PageID, _ = cmd.Flags().GetString("page")
	f.Round, _ = cmd.Flags().GetInt("round")

	pageLevel, _ := cmd.Flags().GetBool("page-level")
	element, _ := cmd.Flags().GetString("element")
	switch {
	case pageLevel && element != "":
		return f, fmt.Errorf("--page-level and --element can not be combined")
	case pageLevel:
		f.ElementID = fbstore.PageLevel()
	case element != "":
		f.ElementID = fbstore.Element(element)
	}

	status, _ := cmd.Flags().GetString("status")
	if status != "" {
		f.Status = feedback.Status(status)
		if !f.Status.Valid() {
			return f, fmt.Errorf("invalid status %s. must be one of open, resolved", status)
		}
	}
	return f, nil
}

func printEntries(entries []feedback.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPAGE\tELEMENT\tROUND\tRATING\tSTATUS\tAUTHOR\tCREATED\tCOMMENT")
	for _, e := range entries {
		element := string(e.ElementID)
		if e.IsPageLevel() {
			element = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.PageID, element, strconv.Itoa(e.Round), strconv.Itoa(e.Rating), e.Status, e.Author, e.CreatedAt, e.Comment)
	}
	_ = w.Flush()
}
