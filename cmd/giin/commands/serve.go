package commands

import (
	"github.com/spf13/cobra"
)

var serveAddr *string

func init() {
	serveAddr = serveCmd.Flags().String("addr", "", "Listen address (defaults to SERVER_ADDR).")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--addr <host:port>]",
	Short: "Serves the canonical collection and the proceedings search proxy over HTTP.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return container.Server(cmd.Context(), *serveAddr).Run(cmd.Context())
	},
}
