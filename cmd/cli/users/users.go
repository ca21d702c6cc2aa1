package users

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/client"
	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/output"
	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/root"
)

func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users (admin only)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE:  runList,
	}

	usersCmd.AddCommand(listCmd, createCmd())
	root.GetRoot().AddCommand(usersCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var users []struct {
		Username string   `json:"username"`
		Email    string   `json:"email"`
		Projects []string `json:"projects"`
		Role     string   `json:"role"`
	}
	if err := client.Do("GET", "/users", nil, true, &users); err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users yet.")
		return nil
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		rows = append(rows, []interface{}{u.Username, u.Email, u.Role, strings.Join(u.Projects, ", ")})
	}
	output.RenderTable([]string{"Username", "Email", "Role", "Projects"}, rows)
	return nil
}

func createCmd() *cobra.Command {
	var username, password, email, role string
	var projects []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user and mail them their credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"username": username,
				"password": password,
				"email":    email,
				"projects": projects,
				"role":     role,
			}

			var out struct {
				EmailSent bool   `json:"email_sent"`
				Warning   string `json:"warning"`
			}
			if err := client.Do("POST", "/users", payload, true, &out); err != nil {
				return err
			}

			if out.EmailSent {
				fmt.Printf("User %q created and email sent to %s.\n", username, email)
			} else {
				fmt.Printf("User %q created. %s\n", username, out.Warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&role, "role", "employee", "Role: employee or admin")
	cmd.Flags().StringSliceVar(&projects, "projects", nil, "Projects to assign (repeatable or comma-separated)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")

	return cmd
}
