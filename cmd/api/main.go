package main

import (
	"os"

	"github.com/ravi1475/school-erp-backend/internal/pkg/logger"
	"github.com/ravi1475/school-erp-backend/internal/server"
)

// @title School ERP API
// @version 1.0
// @description Backend for student admissions, fees, and transfer certificates

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
