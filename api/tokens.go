package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"
)

const resetTokenTTL = time.Hour

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	_, err := rand.Read(buf)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *storage) createResetToken(email string) (*passwordResetToken, error) {
	token, err := generateResetToken()
	if err != nil {
		return nil, err
	}
	t := &passwordResetToken{
		Token:     token,
		Email:     email,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}

	query := `INSERT INTO password_reset_tokens (token, email, expires_at)
			  VALUES ($1, $2, $3)
			  RETURNING created_at`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, query, t.Token, t.Email, t.ExpiresAt)
	err = row.Scan(&t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *storage) getResetToken(token string) (*passwordResetToken, error) {
	query := `SELECT token, email, created_at, expires_at, used
			  FROM password_reset_tokens
			  WHERE token = $1 AND used = FALSE`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, token)
	var t passwordResetToken
	err := row.Scan(&t.Token, &t.Email, &t.CreatedAt, &t.ExpiresAt, &t.Used)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, nil
		default:
			return nil, err
		}
	}
	return &t, nil
}

// consumeResetToken claims the token. Zero affected rows means someone else
// consumed it first, which resolves the race between two concurrent confirms
// in favor of whichever update landed first.
func (s *storage) consumeResetToken(token string) (bool, error) {
	query := `UPDATE password_reset_tokens SET used = TRUE
			  WHERE token = $1 AND used = FALSE`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
