package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintab/statement-recovery/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := api.NewApp()
		addr := fmt.Sprintf(":%d", cfg.Port)
		Log.WithField("addr", addr).Info("Starting API server")
		return app.Listen(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
