// Command taleemctl validates, seeds and exports concept content.
package main

import (
	"log/slog"
	"os"

	"github.com/p-n-ai/taleem/internal/platform/config"
	"github.com/p-n-ai/taleem/internal/platform/logging"
)

func main() {
	slog.SetDefault(logging.New(config.LogConfig{
		Level:  os.Getenv("LEARN_LOG_LEVEL"),
		Format: "text",
	}, os.Stderr))

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
