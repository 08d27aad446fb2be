package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"slotpark/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

func (r *UserRepository) FindByID(id int) (*db.User, error) {
	var u db.User
	query := `SELECT id, username, password_hash, name, email, phone FROM users WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email, &u.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(username string) (*db.User, error) {
	var u db.User
	query := `SELECT id, username, password_hash, name, email, phone FROM users WHERE username = $1`
	err := r.DB.QueryRow(query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email, &u.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user %q: %w", username, err)
	}
	return &u, nil
}

func (r *UserRepository) ExistsByID(id int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user %d: %w", id, err)
	}
	return exists, nil
}

func (r *UserRepository) Create(u *db.User) error {
	query := `
		INSERT INTO users (username, password_hash, name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.DB.QueryRow(query, u.Username, u.PasswordHash, u.Name, u.Email, u.Phone).Scan(&u.ID); err != nil {
		return fmt.Errorf("error creating user %q: %w", u.Username, err)
	}
	return nil
}

func (r *UserRepository) Update(u *db.User) error {
	query := `UPDATE users SET username = $1, password_hash = $2, name = $3, email = $4, phone = $5 WHERE id = $6`
	if _, err := r.DB.Exec(query, u.Username, u.PasswordHash, u.Name, u.Email, u.Phone, u.ID); err != nil {
		return fmt.Errorf("error updating user %d: %w", u.ID, err)
	}
	return nil
}

func (r *UserRepository) DeleteByID(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting user %d: %w", id, err)
	}
	return nil
}
