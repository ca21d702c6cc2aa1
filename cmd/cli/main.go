package main

import (
	"fmt"
	"os"

	"github.com/sumitsharma12k/timesheet-portal/cmd/cli/root"

	// Command packages register themselves on the root command.
	_ "github.com/sumitsharma12k/timesheet-portal/cmd/cli/auth"
	_ "github.com/sumitsharma12k/timesheet-portal/cmd/cli/entries"
	_ "github.com/sumitsharma12k/timesheet-portal/cmd/cli/projects"
	_ "github.com/sumitsharma12k/timesheet-portal/cmd/cli/users"
)

func main() {
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
