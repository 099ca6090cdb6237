// Package journalctl implements the operator command line for the music
// journal: applying migrations, generating keys and exporting a user's
// decrypted entries.
package journalctl

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/cryptox"
	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DSN        string
	Key        string
	Passphrase bool
	Salt       string
	Verbose    bool
}

// NewRootCommand creates the root command for journalctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "journalctl",
		Short: "Operator tool for the music journal store",
		Long: `Maintain the encrypted music journal store.

The encryption key is taken from --key (64 hex characters) or, with
--passphrase, derived from a passphrase read from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.DSN, "dsn", "d", "musicjournal.db", "SQLite path or postgres:// URL")
	cmd.PersistentFlags().StringVarP(&opts.Key, "key", "k", os.Getenv("MUSICJOURNAL_KEY"), "hex encryption key")
	cmd.PersistentFlags().BoolVarP(&opts.Passphrase, "passphrase", "p", false, "prompt for a passphrase instead of a key")
	cmd.PersistentFlags().StringVar(&opts.Salt, "salt", "musicjournal", "salt used with --passphrase")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewKeygenCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// key resolves the encryption key. The prompt goes to w so it never mixes
// with command output.
func (o *RootOptions) key(w io.Writer) ([]byte, error) {
	if o.Key != "" {
		return cryptox.ParseKey(o.Key)
	}
	if !o.Passphrase {
		return nil, fmt.Errorf("%w: pass --key or --passphrase", common.ErrInvalidKey)
	}

	if _, err := fmt.Fprint(w, "Enter passphrase: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(pw)
	if len(pw) == 0 {
		return nil, fmt.Errorf("%w: empty passphrase", common.ErrInvalidKey)
	}
	return cryptox.DeriveKey(pw, []byte(o.Salt)), nil
}

func (o *RootOptions) logger(w io.Writer) logging.Logger {
	level := "warn"
	if o.Verbose {
		level = "debug"
	}
	return logging.NewJSONLogger(w, level)
}
