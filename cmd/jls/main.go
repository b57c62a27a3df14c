package main

import (
	"os"

	"jls/internal/logging"
)

func main() {
	logger := logging.New(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
