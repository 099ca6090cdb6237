package journalctl

import (
	"fmt"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/cryptox"
	"github.com/dmitrijs2005/musicjournal/internal/server/store"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the journal schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
}

// runMigrate opens the store, which applies pending migrations. No records
// are read, so a throwaway key is enough when none was given.
func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	var key []byte
	if opts.Key == "" && !opts.Passphrase {
		key = common.GenerateRandByteArray(cryptox.KeySize)
	} else {
		var err error
		if key, err = opts.key(cmd.ErrOrStderr()); err != nil {
			return err
		}
	}
	defer common.WipeByteArray(key)

	st, err := store.Open(cmd.Context(), opts.DSN, key, opts.logger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer st.Close()

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date: %s\n", opts.DSN)
	return err
}
