package projects

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/client"
	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/output"
	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/root"
)

func init() {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		RunE:  runList,
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all projects (admin only)",
		RunE:  runClear,
	}

	projectsCmd.AddCommand(listCmd, addCmd, clearCmd)
	root.GetRoot().AddCommand(projectsCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var projects []string
	if err := client.Do("GET", "/projects", nil, true, &projects); err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects added yet.")
		return nil
	}

	rows := make([][]interface{}, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []interface{}{p})
	}
	output.RenderTable([]string{"Project Name"}, rows)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	var projects []string
	if err := client.Do("POST", "/projects", map[string]string{"name": args[0]}, true, &projects); err != nil {
		return err
	}
	fmt.Printf("Projects now: %d\n", len(projects))
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if err := client.Do("DELETE", "/projects", nil, true, nil); err != nil {
		return err
	}
	fmt.Println("All projects cleared.")
	return nil
}
