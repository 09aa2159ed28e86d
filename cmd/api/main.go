package main

import (
	"os"

	"github.com/eminekt/campuslib/internal/pkg/logger"
	"github.com/eminekt/campuslib/internal/server"
)

// @title CampusLib API
// @version 1.0
// @description REST API for managing a campus library: books, students, issue tracking, reports and a chat assistant

// @contact.name API Support
// @contact.email support@campuslib.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
