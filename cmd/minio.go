package cmd

import (
	"fmt"
	"log"

	"EchoFM/config"
	"EchoFM/storage"

	"github.com/spf13/cobra"
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Test the MinIO connection",
	Long:  `Connect to MinIO and verify that the configured bucket is reachable.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("MinIO: %s, bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		fmt.Println("MinIO connection established and bucket verified.")
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
}
