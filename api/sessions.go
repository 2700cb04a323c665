package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookieName = "session"
	sessionTTL        = 7 * 24 * time.Hour
)

func (s *storage) createSession(userID int) (*session, error) {
	sess := &session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	query := `INSERT INTO sessions (id, user_id, expires_at)
			  VALUES ($1, $2, $3)
			  RETURNING created_at`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, query, sess.ID, sess.UserID, sess.ExpiresAt)
	err := row.Scan(&sess.CreatedAt)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// getSession resolves a cookie value back to its session. The expiry check
// lives in the predicate so a stale row that the sweeper has not removed yet
// still reads as absent.
func (s *storage) getSession(id string) (*session, error) {
	query := `SELECT id, user_id, created_at, expires_at
			  FROM sessions
			  WHERE id = $1 AND expires_at > now()`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, id)
	var sess session
	err := row.Scan(&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &sess, nil
}

func (s *storage) deleteSession(id string) error {
	query := `DELETE FROM sessions
			  WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

func (s *storage) deleteExpiredSessions() (int64, error) {
	query := `DELETE FROM sessions
			  WHERE expires_at <= now()`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
