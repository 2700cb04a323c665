package main

import (
	"context"
	"database/sql"
	"errors"
)

func (s *storage) getTodos(userID int) ([]todo, error) {
	query := `SELECT id, created_at, user_id, text, completed, completed_at
			  FROM todos
			  WHERE user_id = $1
			  ORDER BY created_at, id`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]todo, 0)
	for rows.Next() {
		var t todo
		err := rows.Scan(&t.ID, &t.CreatedAt, &t.UserID, &t.Text, &t.Completed, &t.CompletedAt)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// getTodo filters by id and owner in one predicate. A row owned by someone
// else scans the same as a row that does not exist.
func (s *storage) getTodo(id int, userID int) (*todo, error) {
	query := `SELECT id, created_at, user_id, text, completed, completed_at
			  FROM todos
			  WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	row := s.db.QueryRowContext(ctx, query, id, userID)
	var t todo
	err := row.Scan(&t.ID, &t.CreatedAt, &t.UserID, &t.Text, &t.Completed, &t.CompletedAt)
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

func (s *storage) insertTodo(t *todo) error {
	query := `INSERT INTO todos (user_id, text)
			  VALUES ($1, $2)
			  RETURNING id, created_at, completed`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, query, t.UserID, t.Text)
	return row.Scan(&t.ID, &t.CreatedAt, &t.Completed)
}

func (s *storage) updateTodo(t *todo) (bool, error) {
	query := `UPDATE todos SET text = $1, completed = $2, completed_at = $3
			  WHERE id = $4 AND user_id = $5`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query, t.Text, t.Completed, t.CompletedAt, t.ID, t.UserID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *storage) deleteTodo(id int, userID int) (bool, error) {
	query := `DELETE FROM todos
			  WHERE id = $1 AND user_id = $2`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
