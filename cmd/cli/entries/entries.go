package entries

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/client"
	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/output"
	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/root"
)

type entry struct {
	Username string  `json:"username"`
	Date     string  `json:"date"`
	Project  string  `json:"project"`
	Hours    float64 `json:"hours"`
	Notes    string  `json:"notes"`
}

func init() {
	entriesCmd := &cobra.Command{
		Use:   "entries",
		Short: "Submit and view timesheet entries",
	}

	entriesCmd.AddCommand(listCmd(), submitCmd())
	root.GetRoot().AddCommand(entriesCmd)
}

func listCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your timesheet entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/timesheets/mine"
			if all {
				path = "/timesheets"
			}
			var rows []entry
			if err := client.Do("GET", path, nil, true, &rows); err != nil {
				return err
			}
			if len(rows) == 0 {
				fmt.Println("No timesheets found.")
				return nil
			}

			tableRows := make([][]interface{}, 0, len(rows))
			for _, e := range rows {
				tableRows = append(tableRows, []interface{}{e.Username, e.Date, e.Project, e.Hours, e.Notes})
			}
			output.RenderTable([]string{"Username", "Date", "Project", "Hours", "Notes"}, tableRows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every user's entries (admin only)")
	return cmd
}

func submitCmd() *cobra.Command {
	var date, project, notes string
	var hours float64

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit one timesheet entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"date":    date,
				"project": project,
				"hours":   hours,
				"notes":   notes,
			}
			var created entry
			if err := client.Do("POST", "/timesheets", payload, true, &created); err != nil {
				return err
			}
			fmt.Printf("Timesheet submitted: %s %s %.1fh\n", created.Date, created.Project, created.Hours)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&project, "project", "", "Project name (required, must be assigned to you)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	cmd.MarkFlagRequired("project")

	return cmd
}
