package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/taskhub/internal/resolver"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage tasks",
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks in a project",
	RunE:    runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task; only flags you pass change",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task DONE",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var (
	taskProjectID    string
	taskDescription  string
	taskStatus       string
	taskPriority     string
	taskDueDate      string
	taskClearDueDate bool
	taskTags         []string
	taskAssignee     string
)

func init() {
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)

	taskListCmd.Flags().StringVarP(&taskProjectID, "project", "p", "", "Project ID (required)")
	taskListCmd.MarkFlagRequired("project")

	taskAddCmd.Flags().StringVarP(&taskProjectID, "project", "p", "", "Project ID (required)")
	taskAddCmd.MarkFlagRequired("project")
	taskAddCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Task description")
	taskAddCmd.Flags().StringVar(&taskPriority, "priority", "", "Priority: LOW, MEDIUM, HIGH or CRITICAL")
	taskAddCmd.Flags().StringVar(&taskDueDate, "due", "", "Due date (YYYY-MM-DD or RFC3339)")
	taskAddCmd.Flags().StringSliceVar(&taskTags, "tag", nil, "Tag ID (repeatable)")
	taskAddCmd.Flags().StringVar(&taskAssignee, "assign", "", "User ID to assign")

	taskUpdateCmd.Flags().StringVar(&taskStatus, "status", "", "Status: TODO, DOING or DONE")
	taskUpdateCmd.Flags().StringVar(&taskPriority, "priority", "", "Priority: LOW, MEDIUM, HIGH or CRITICAL")
	taskUpdateCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Task description")
	taskUpdateCmd.Flags().StringVar(&taskDueDate, "due", "", "Due date (YYYY-MM-DD or RFC3339)")
	taskUpdateCmd.Flags().BoolVar(&taskClearDueDate, "clear-due", false, "Remove the due date")
	taskUpdateCmd.Flags().StringSliceVar(&taskTags, "tag", nil, "Replace the tag set (repeatable)")
	taskUpdateCmd.Flags().StringVar(&taskAssignee, "assign", "", "User ID to assign")
}

func runTaskList(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	tasks, err := c.Tasks(taskProjectID)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks in this project.")
		return nil
	}

	for _, t := range tasks {
		printTask(t)
	}
	return nil
}

func printTask(t resolver.TaskView) {
	line := fmt.Sprintf("%s %s  %s", renderStatus(t.Status), renderPriority(t.Priority), t.Title)
	fmt.Println(line)
	fmt.Printf("  %s\n", mutedStyle.Render(t.ID))
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		if t.Status != "DONE" && t.DueDate.Before(time.Now()) {
			fmt.Printf("  due %s\n", overdueStyle.Render(due+" (overdue)"))
		} else {
			fmt.Printf("  due %s\n", due)
		}
	}
	if len(t.Tags) > 0 {
		names := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			names = append(names, tag.Name)
		}
		fmt.Printf("  %s\n", mutedStyle.Render("tags: "+strings.Join(names, ", ")))
	}
	if t.AssignedUser != nil {
		fmt.Printf("  %s\n", mutedStyle.Render("assigned: "+t.AssignedUser.Name))
	}
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"project_id": taskProjectID,
		"title":      strings.Join(args, " "),
	}
	if taskDescription != "" {
		req["description"] = taskDescription
	}
	if taskPriority != "" {
		req["priority"] = strings.ToUpper(taskPriority)
	}
	if taskDueDate != "" {
		req["due_date"] = taskDueDate
	}
	if len(taskTags) > 0 {
		req["tag_ids"] = taskTags
	}
	if taskAssignee != "" {
		req["assigned_user"] = taskAssignee
	}

	task, err := c.CreateTask(req)
	if err != nil {
		return err
	}

	fmt.Printf("Created task %q (%s)\n", task.Title, task.ID)
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	req := map[string]interface{}{}
	if cmd.Flags().Changed("status") {
		req["status"] = strings.ToUpper(taskStatus)
	}
	if cmd.Flags().Changed("priority") {
		req["priority"] = strings.ToUpper(taskPriority)
	}
	if cmd.Flags().Changed("description") {
		req["description"] = taskDescription
	}
	if taskClearDueDate {
		req["due_date"] = nil
	} else if cmd.Flags().Changed("due") {
		req["due_date"] = taskDueDate
	}
	if cmd.Flags().Changed("tag") {
		req["tag_ids"] = taskTags
	}
	if cmd.Flags().Changed("assign") {
		req["assigned_user"] = taskAssignee
	}
	if len(req) == 0 {
		return fmt.Errorf("nothing to update; pass at least one flag")
	}

	task, err := c.UpdateTask(args[0], req)
	if err != nil {
		return err
	}

	fmt.Println("Updated:")
	printTask(*task)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	task, err := c.UpdateTask(args[0], map[string]interface{}{"status": "DONE"})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", renderStatus(task.Status), task.Title)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	c, err := apiClient()
	if err != nil {
		return err
	}

	if err := c.DeleteTask(args[0]); err != nil {
		return err
	}
	fmt.Println("Task deleted.")
	return nil
}
