package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"p"},
	Short:   "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your projects",
	RunE:    runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectAdd,
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a project (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectArchive,
}

var projectUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Unarchive a project (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUnarchive,
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a project and all its tasks (owner only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRm,
}

var (
	projectListArchived bool
	projectDescription  string
	projectForceDelete  bool
)

func init() {
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectArchiveCmd)
	projectCmd.AddCommand(projectUnarchiveCmd)
	projectCmd.AddCommand(projectRmCmd)

	projectListCmd.Flags().BoolVarP(&projectListArchived, "archived", "a", false, "List archived projects")
	projectAddCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "Project description")
	projectRmCmd.Flags().BoolVarP(&projectForceDelete, "force", "f", false, "Skip confirmation")
}

func runProjectList(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	projects, err := c.Projects()
	if projectListArchived {
		projects, err = c.ArchivedProjects()
	}
	if err != nil {
		return err
	}

	if len(projects) == 0 {
		fmt.Println("No projects found. Create one with: taskhub project add \"My project\"")
		return nil
	}

	for _, p := range projects {
		title := p.Title
		if p.Archived {
			title = archivedStyle.Render(title + " (archived)")
		} else {
			title = headingStyle.Render(title)
		}
		fmt.Printf("%s  %s\n", title, mutedStyle.Render(p.ID))
		if p.Description != "" {
			fmt.Printf("  %s\n", p.Description)
		}
		if p.Owner != nil {
			fmt.Printf("  %s\n", mutedStyle.Render("owner: "+p.Owner.Name))
		}
	}
	return nil
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	title := strings.Join(args, " ")
	project, err := c.CreateProject(title, projectDescription)
	if err != nil {
		return err
	}

	fmt.Printf("Created project %q (%s)\n", project.Title, project.ID)
	return nil
}

func runProjectArchive(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if err := c.ArchiveProject(args[0]); err != nil {
		return err
	}
	fmt.Println("Project archived. Its tasks are now read-only.")
	return nil
}

func runProjectUnarchive(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if err := c.UnarchiveProject(args[0]); err != nil {
		return err
	}
	fmt.Println("Project unarchived.")
	return nil
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if !projectForceDelete {
		answer, err := promptLine("Delete this project and ALL its tasks? [y/N] ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := c.DeleteProject(args[0]); err != nil {
		return err
	}
	fmt.Println("Project deleted.")
	return nil
}
