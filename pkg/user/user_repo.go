package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	CreateUser(ctx context.Context, user User) (string, error)
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, userId string, user User) (User, error)
	DeleteUser(ctx context.Context, id string) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO users (id, username, display_name, timezone, currency) VALUES ($1, $2, $3, $4, $5)`
	_, err := u.db.ExecContext(ctx, query,
		id,
		user.Username,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.Currency,
	)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id string) (User, error) {
	query := `SELECT id, username, display_name, timezone, currency FROM users WHERE id = $1`
	row := u.db.QueryRowContext(ctx, query, id)
	return scanUser(row)
}

func (u *UserRepoImpl) UpdateUser(ctx context.Context, userId string, user User) (User, error) {
	query := `UPDATE users SET display_name = $1, timezone = $2, currency = $3 WHERE id = $4`
	result, err := u.db.ExecContext(ctx, query,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.Currency,
		userId,
	)
	if err != nil {
		log.Errorf("failed to update user: %v", err)
		return User{}, fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return User{}, ErrUserNotFound
	}
	user.Id = userId
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	if _, err := u.db.ExecContext(ctx, query, id); err != nil {
		log.Errorf("failed to delete user: %v", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, username, display_name, timezone, currency FROM users ORDER BY username`
	rows, err := u.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	query := `SELECT COUNT(1) FROM users WHERE username = $1`
	var count int
	if err := u.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return count == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	err := row.Scan(&user.Id, &user.Username, &user.DisplayName, &user.Settings.Timezone, &user.Settings.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}
