// Command create-admin seeds the first admin record into users.json. There is
// no self-registration, so a fresh deployment runs this once before starting
// the API.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/sumitsharma12k/timesheet-portal/internal/models"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

func main() {
	dataDir := flag.String("data-dir", "data", "directory holding the JSON collections")
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	email := flag.String("email", "", "admin email (required)")
	flag.Parse()

	if *password == "" || *email == "" {
		log.Fatal("both -password and -email are required")
	}

	st, err := store.New(*dataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}

	users, err := st.LoadUsers()
	if err != nil {
		log.Fatalf("Failed to load users: %v", err)
	}
	for _, u := range users {
		if u.Username == *username {
			log.Fatalf("User %q already exists", *username)
		}
	}

	users = append(users, models.User{
		Username: *username,
		Password: *password,
		Email:    *email,
		Projects: []string{},
		Role:     models.RoleAdmin,
	})
	if err := st.SaveUsers(users); err != nil {
		log.Fatalf("Failed to save users: %v", err)
	}

	fmt.Printf("Admin %q created in %s\n", *username, st.Dir())
}
