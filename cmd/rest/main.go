package main

import (
	"os"

	"ai-artpoet-be/internal/bootstrap"
	"ai-artpoet-be/internal/config"
	"ai-artpoet-be/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	// The container starts the analytics consumer on its own goroutine.
	container := bootstrap.NewContainer(cfg)
	defer func() {
		if container.NatsPub != nil {
			container.NatsPub.Close()
		}
	}()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	if err := srv.Run(); err != nil {
		container.Logger.Error("server", "server stopped", map[string]interface{}{
			"error": err.Error(),
		})
		_ = container.Logger.Sync()
		os.Exit(1)
	}
}
