package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askpilot/internal/model"
)

func TestLoadMissingFile(t *testing.T) {
	repo := NewUserRepository(filepath.Join(t.TempDir(), "users.csv"))

	users, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	repo := NewUserRepository(path)

	require.NoError(t, repo.Append(model.User{Username: "alice", PasswordHash: "h1"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Username,Password\nalice,h1\n", string(raw))
}

func TestAppendAndReload(t *testing.T) {
	repo := NewUserRepository(filepath.Join(t.TempDir(), "users.csv"))

	require.NoError(t, repo.Append(model.User{Username: "alice", PasswordHash: "h1"}))
	require.NoError(t, repo.Append(model.User{Username: "bob", PasswordHash: "h2"}))

	users, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "h2", users[1].PasswordHash)
}

func TestFindByUsernameIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository(filepath.Join(t.TempDir(), "users.csv"))
	require.NoError(t, repo.Append(model.User{Username: "Alice", PasswordHash: "h1"}))

	found, err := repo.FindByUsername("Alice")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := repo.FindByUsername("alice")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
