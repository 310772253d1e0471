package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/listit/api/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "listit",
		Short: "LIST IT API Server",
		Long:  `LIST IT is a personal list management service with date-bucketed agenda views for tasks and notes.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
