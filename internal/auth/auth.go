// Package auth checks submitted credentials against the users collection.
package auth

import (
	"github.com/sumitsharma12k/timesheet-portal/internal/models"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

// Authenticate loads the users collection fresh and scans it in order for a
// record whose username and password both match exactly. It returns nil when
// no record matches; callers must not distinguish unknown user from wrong
// password in what they report.
//
// Passwords are compared verbatim against the stored value. Existing
// users.json files hold plaintext credentials and hashing them would lock
// every user out, so equality is the match rule.
func Authenticate(st *store.Store, username, password string) (*models.User, error) {
	users, err := st.LoadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, nil
}
