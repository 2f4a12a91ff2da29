// Package cli implements the taskhub command line client. Commands
// talk to a TaskHub server over its HTTP API; nothing is stored
// locally except the session token.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/taskhub/internal/client"
)

var rootCmd = &cobra.Command{
	Use:   "taskhub",
	Short: "TaskHub - multi-user project and task tracker",
	Long: `TaskHub is a multi-user project and task tracker. Register an
account, create projects, add tasks with tags and due dates, and
share reusable task templates.

Start with:
  taskhub register
  taskhub project add "My project"`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(templateCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// apiClient creates the API client shared by all commands.
func apiClient() (*client.Client, error) {
	c, err := client.New()
	if err != nil {
		return nil, fmt.Errorf("initializing client: %w", err)
	}
	return c, nil
}

var serverCmd = &cobra.Command{
	Use:   "server [url]",
	Short: "Show or set the server URL",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := apiClient()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Println(c.ServerURL())
			return nil
		}

		if err := c.SetServer(args[0]); err != nil {
			return err
		}
		fmt.Printf("Server set to %s\n", args[0])
		return nil
	},
}
