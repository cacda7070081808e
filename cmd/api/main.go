package main

import (
	"fmt"
	"os"

	"github.com/meric/studentbase/internal/server"
)

// @title           StudentBase API
// @version         1.0
// @description     Backend API for managing student records with role based access control.

// @contact.name   API Support

// @license.name  MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	srv, err := server.NewServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize server: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
