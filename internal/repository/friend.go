package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type FriendRepository interface {
	AddFriend(ctx context.Context, userA, userB string) error
	GetFriends(ctx context.Context, username string) ([]string, error)
}

type friendRepository struct {
	conn *sql.DB
}

func NewFriendRepository(conn *sql.DB) FriendRepository {
	return &friendRepository{
		conn: conn,
	}
}

// AddFriend inserts the symmetric pair; unknown users and self-friendship are ignored.
func (that *friendRepository) AddFriend(ctx context.Context, userA, userB string) error {
	idA, err := that.getUserID(ctx, userA)
	if err != nil {
		return err
	}

	idB, err := that.getUserID(ctx, userB)
	if err != nil {
		return err
	}

	if idA == 0 || idB == 0 || idA == idB {
		return nil
	}

	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint: errcheck // no-op after commit

	query := `INSERT OR IGNORE INTO friends (user_id, friend_id) VALUES (?, ?)`

	if _, err = tx.ExecContext(ctx, query, idA, idB); err != nil {
		return fmt.Errorf("can't add friend: %w", err)
	}

	if _, err = tx.ExecContext(ctx, query, idB, idA); err != nil {
		return fmt.Errorf("can't add friend: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}

func (that *friendRepository) GetFriends(ctx context.Context, username string) ([]string, error) {
	query := `
	SELECT u.username FROM friends f
	JOIN users u ON u.id = f.friend_id
	JOIN users o ON o.id = f.user_id
	WHERE o.username = ?
	ORDER BY u.username`

	rows, err := that.conn.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("can't get friends: %w", err)
	}
	defer rows.Close()

	var friends []string

	for rows.Next() {
		var friend string
		if err = rows.Scan(&friend); err != nil {
			return nil, fmt.Errorf("can't scan friend: %w", err)
		}

		friends = append(friends, friend)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate friends: %w", err)
	}

	return friends, nil
}

func (that *friendRepository) getUserID(ctx context.Context, username string) (int64, error) {
	query := `SELECT id FROM users WHERE username = ?`

	var id int64

	err := that.conn.QueryRowContext(ctx, query, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("can't get user id: %w", err)
	}

	return id, nil
}
