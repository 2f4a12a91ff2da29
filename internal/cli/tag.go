package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tags in a project",
	RunE:    runTagList,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a tag and remove it from all tasks and templates",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagRm,
}

var (
	tagProjectID string
	tagColor     string
)

func init() {
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)

	tagListCmd.Flags().StringVarP(&tagProjectID, "project", "p", "", "Project ID (required)")
	tagListCmd.MarkFlagRequired("project")

	tagAddCmd.Flags().StringVarP(&tagProjectID, "project", "p", "", "Project ID (required)")
	tagAddCmd.MarkFlagRequired("project")
	tagAddCmd.Flags().StringVar(&tagColor, "color", "", "Hex color, e.g. #F59E0B")
}

func runTagList(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	tags, err := c.Tags(tagProjectID)
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		fmt.Println("No tags in this project.")
		return nil
	}

	for _, t := range tags {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("●")
		fmt.Printf("%s %s  %s\n", swatch, t.Name, mutedStyle.Render(t.ID))
	}
	return nil
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	tag, err := c.CreateTag(tagProjectID, args[0], tagColor)
	if err != nil {
		return err
	}

	fmt.Printf("Created tag %q (%s)\n", tag.Name, tag.ID)
	return nil
}

func runTagRm(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if err := c.DeleteTag(args[0]); err != nil {
		return err
	}
	fmt.Println("Tag deleted and removed from tasks and templates.")
	return nil
}
