package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"slotpark/internal/db"
	apperrors "slotpark/internal/errors"
)

type UserStore interface {
	FindByID(id int) (*db.User, error)
	FindByUsername(username string) (*db.User, error)
	Create(u *db.User) error
	Update(u *db.User) error
	DeleteByID(id int) error
}

type UserService struct {
	Repo UserStore
}

func NewUserService(repo UserStore) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) UserByID(id int) (*db.User, error) {
	u, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
	}
	return u, nil
}

// CreateUser stores the user with a bcrypt hash of the supplied password.
func (s *UserService) CreateUser(u *db.User, password string) (*db.User, error) {
	if u.Username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password cannot be empty", apperrors.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	u.PasswordHash = string(hash)
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser overwrites an existing user's fields. Unknown ids fail with
// NotFound and write nothing. An empty password keeps the stored hash.
func (s *UserService) UpdateUser(id int, patch *db.User, password string) (*db.User, error) {
	u, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
	}

	u.Username = patch.Username
	u.Name = patch.Name
	u.Email = patch.Email
	u.Phone = patch.Phone
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.Repo.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the user when present; deleting an absent id is a no-op.
func (s *UserService) DeleteUser(id int) error {
	u, err := s.Repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	return s.Repo.DeleteByID(id)
}

// Authenticate verifies the claimed password against the stored bcrypt hash.
// Any mismatch, including an unknown username, yields InvalidCredentials.
func (s *UserService) Authenticate(username, password string) (*db.User, error) {
	u, err := s.Repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return u, nil
}
