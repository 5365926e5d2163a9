package app

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"askpilot/internal/model"
	"askpilot/internal/repository"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUsernameExists = errors.New("username already exists")
	ErrUserNotFound   = errors.New("username does not exist")
	ErrWrongPassword  = errors.New("incorrect password")
)

// AuthService registers and authenticates users against the flat
// credential file. Passwords are stored as bcrypt hashes in the file's
// Password column.
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) Register(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidInput
	}

	existing, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	return s.userRepo.Append(model.User{
		Username:     username,
		PasswordHash: string(hash),
	})
}

// Authenticate distinguishes an unknown username from a wrong password
// so the login form can surface either message.
func (s *AuthService) Authenticate(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidInput
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
