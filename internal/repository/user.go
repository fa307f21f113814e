package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/rocketscienceinc/tictactoe-social/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, username, password string) error
	GetByCredentials(ctx context.Context, username, password string) (*entity.User, error)
	GetElo(ctx context.Context, username string) (int, error)
	UpdateElo(ctx context.Context, username string, elo int) error
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (that *userRepository) Create(ctx context.Context, username, password string) error {
	query := `INSERT INTO users (username, password) VALUES (?, ?)`

	_, err := that.conn.ExecContext(ctx, query, username, password)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return apperror.ErrUsernameTaken
	}

	if err != nil {
		return fmt.Errorf("can't create user: %w", err)
	}

	return nil
}

// GetByCredentials matches the stored row exactly; credential hardening is out of scope.
func (that *userRepository) GetByCredentials(ctx context.Context, username, password string) (*entity.User, error) {
	query := `SELECT id, username, elo FROM users WHERE username = ? AND password = ?`

	var user entity.User

	err := that.conn.QueryRowContext(ctx, query, username, password).Scan(&user.ID, &user.Username, &user.Elo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}

func (that *userRepository) GetElo(ctx context.Context, username string) (int, error) {
	query := `SELECT elo FROM users WHERE username = ?`

	var elo int

	err := that.conn.QueryRowContext(ctx, query, username).Scan(&elo)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperror.ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("can't get elo: %w", err)
	}

	return elo, nil
}

func (that *userRepository) UpdateElo(ctx context.Context, username string, elo int) error {
	query := `UPDATE users SET elo = ? WHERE username = ?`

	if _, err := that.conn.ExecContext(ctx, query, elo, username); err != nil {
		return fmt.Errorf("can't update elo: %w", err)
	}

	return nil
}
