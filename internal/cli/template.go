package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage task templates",
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates visible to you in a project",
	RunE:    runTemplateList,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a task template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateAdd,
}

var templateUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Create a task from a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateUse,
}

var templateRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a template (creator only)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateRm,
}

var (
	templateProjectID   string
	templateTitle       string
	templateDescription string
	templatePriority    string
	templateTags        []string
	templatePublic      bool
	templateDueDate     string
)

func init() {
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateUseCmd)
	templateCmd.AddCommand(templateRmCmd)

	templateListCmd.Flags().StringVarP(&templateProjectID, "project", "p", "", "Project ID (required)")
	templateListCmd.MarkFlagRequired("project")

	templateAddCmd.Flags().StringVarP(&templateProjectID, "project", "p", "", "Project ID (required)")
	templateAddCmd.MarkFlagRequired("project")
	templateAddCmd.Flags().StringVar(&templateTitle, "title", "", "Task title the template produces (required)")
	templateAddCmd.MarkFlagRequired("title")
	templateAddCmd.Flags().StringVarP(&templateDescription, "description", "d", "", "Task description")
	templateAddCmd.Flags().StringVar(&templatePriority, "priority", "", "Priority: LOW, MEDIUM, HIGH or CRITICAL")
	templateAddCmd.Flags().StringSliceVar(&templateTags, "tag", nil, "Tag ID (repeatable)")
	templateAddCmd.Flags().BoolVar(&templatePublic, "public", false, "Visible to everyone who can see the project")

	templateUseCmd.Flags().StringVar(&templateDueDate, "due", "", "Due date for the new task (YYYY-MM-DD or RFC3339)")
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	templates, err := c.Templates(templateProjectID)
	if err != nil {
		return err
	}

	if len(templates) == 0 {
		fmt.Println("No templates visible to you in this project.")
		return nil
	}

	for _, t := range templates {
		visibility := "private"
		if t.IsPublic {
			visibility = "public"
		}
		fmt.Printf("%s %s  %s\n", headingStyle.Render(t.Name), mutedStyle.Render("("+visibility+")"), mutedStyle.Render(t.ID))
		fmt.Printf("  %s %s\n", renderPriority(t.Priority), t.Title)
		fmt.Printf("  %s\n", mutedStyle.Render("by "+t.CreatedBy))
	}
	return nil
}

func runTemplateAdd(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"project_id": templateProjectID,
		"name":       args[0],
		"title":      templateTitle,
		"is_public":  templatePublic,
	}
	if templateDescription != "" {
		req["description"] = templateDescription
	}
	if templatePriority != "" {
		req["priority"] = strings.ToUpper(templatePriority)
	}
	if len(templateTags) > 0 {
		req["tag_ids"] = templateTags
	}

	tpl, err := c.CreateTemplate(req)
	if err != nil {
		return err
	}

	fmt.Printf("Created template %q (%s)\n", tpl.Name, tpl.ID)
	return nil
}

func runTemplateUse(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	task, err := c.InstantiateTemplate(args[0], templateDueDate)
	if err != nil {
		return err
	}

	fmt.Printf("Created task %q (%s)\n", task.Title, task.ID)
	return nil
}

func runTemplateRm(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if err := c.DeleteTemplate(args[0]); err != nil {
		return err
	}
	fmt.Println("Template deleted.")
	return nil
}
