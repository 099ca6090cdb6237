package journalctl

import (
	"fmt"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/cryptox"
	"github.com/spf13/cobra"
)

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a new random encryption key",
		Long: `Print a new random 256-bit encryption key as 64 hex characters.

Store it in the server configuration (encryption_key or -k). Records written
under one key cannot be read with another.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := common.MakeRandHexString(cryptox.KeySize)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)
			return err
		},
	}
}
