package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title           Job Portal API
// @version         1.0
// @description     Job portal backend: authentication, user profiles, skills and resume/profile picture files.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "job-portal",
		Short:         "Job portal backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Serving is the default so the bare binary keeps working in containers
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}
