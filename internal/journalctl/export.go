package journalctl

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/musicjournal/internal/server/store"
	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	Output string
	Order  string
}

// Export is the document written by the export command.
type Export struct {
	User    models.User           `json:"user"`
	Entries []models.JournalEntry `json:"entries"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <user-id>",
		Short: "Write a user's decrypted journal as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&opts.Order, "order", "", "entry order (created|updated); default is insertion order")

	return cmd
}

func runExport(rootOpts *RootOptions, opts *ExportOptions, userID string, cmd *cobra.Command) error {
	key, err := rootOpts.key(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	ctx := cmd.Context()
	st, err := store.Open(ctx, rootOpts.DSN, key, rootOpts.logger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer st.Close()

	user, err := st.GetUserByExternalID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, common.ErrorNotFound)
	}

	list, err := st.GetAllJournalEntries(ctx, userID, entries.ParseOrder(opts.Order))
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{User: *user, Entries: list})
}
