package repository

import (
	"encoding/csv"
	"fmt"
	"os"

	"askpilot/internal/model"
)

var csvHeader = []string{"Username", "Password"}

// UserRepository reads and appends rows of the flat credential file.
// The file is a two-column CSV with a Username,Password header. Writes
// are append-only without locking; concurrent registrations racing on
// the same username are an accepted last-writer-wins hazard of the
// single-writer deployment this store is meant for.
type UserRepository struct {
	path string
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{path: path}
}

// Load returns every user in the file. A missing file is not an error,
// it reads as zero users.
func (r *UserRepository) Load() ([]model.User, error) {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return []model.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open users file failed: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse users file failed: %w", err)
	}

	users := make([]model.User, 0, len(rows))
	for i, row := range rows {
		if i == 0 && row[0] == csvHeader[0] {
			continue
		}
		users = append(users, model.User{
			Username:     row[0],
			PasswordHash: row[1],
		})
	}
	return users, nil
}

// FindByUsername returns the user with an exact, case-sensitive username
// match, or nil when absent.
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	users, err := r.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Append adds one row, creating the file with its header first when
// absent.
func (r *UserRepository) Append(user model.User) error {
	_, statErr := os.Stat(r.path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open users file for append failed: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if newFile {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write users header failed: %w", err)
		}
	}
	if err := writer.Write([]string{user.Username, user.PasswordHash}); err != nil {
		return fmt.Errorf("write user row failed: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush users file failed: %w", err)
	}
	return nil
}
