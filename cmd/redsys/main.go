package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"redsys/internal/interfaces/cli/migrate"
	"redsys/internal/interfaces/cli/server"
	"redsys/internal/interfaces/cli/token"
)

// @title						redsys API
// @version					1.0
// @description				Editorial ticket and article workflow.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:   "redsys",
		Short: "redsys - editorial workflow service",
		Long:  `redsys tracks article work through tickets: state transitions, versioned content and comment threads.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
