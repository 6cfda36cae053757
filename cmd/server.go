package cmd

import (
	"EchoFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the EchoFM server",
	Long:  `Start the EchoFM HTTP server, serving the catalog API and stored media.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
