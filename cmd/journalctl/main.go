package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/musicjournal/internal/journalctl"
)

func main() {
	if err := journalctl.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
