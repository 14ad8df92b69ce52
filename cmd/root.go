package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"YoDawg/lib/sl"
)

var configPath string

// current is built by the root PersistentPreRunE and shared by the subcommands.
var current *app

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yodawg",
		Short:         "Turn posts into Yo Dawg memes and comment with them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			current = a
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "conf", "config.yml", "path to config file")

	root.AddCommand(
		newQuoteCmd(),
		newOverlayCmd(),
		newGenerateCmd(),
		newCommentCmd(),
		newLoginCmd(),
		newHistoryCmd(),
	)
	return root
}

// Execute runs the command line; errors are logged and returned.
// Storage opened for the command is closed afterwards.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if current != nil {
		defer current.Close()
	}
	if err != nil {
		if current != nil {
			current.log.Error("command failed", sl.Err(err))
		} else {
			fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		}
	}
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
