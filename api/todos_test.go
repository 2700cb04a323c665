package main

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func todoColumns() []string {
	return []string{"id", "created_at", "user_id", "text", "completed", "completed_at"}
}

func TestGetTodos_OrderedByCreation(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(todoColumns()).
		AddRow(1, fixedTime(), 1, "buy milk", false, nil).
		AddRow(2, fixedTime().Add(1), 1, "walk dog", true, fixedTime().Add(2))
	mock.ExpectQuery(`SELECT (.+) FROM todos\s+WHERE user_id = \$1\s+ORDER BY created_at, id`).
		WithArgs(1).
		WillReturnRows(rows)

	todos, err := s.getTodos(1)
	if err != nil {
		t.Fatalf("getTodos error: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Text != "buy milk" || todos[1].CompletedAt == nil {
		t.Fatalf("unexpected todos: %+v", todos)
	}
}

func TestGetTodos_NoneYieldsEmptySlice(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT (.+) FROM todos`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(todoColumns()))

	todos, err := s.getTodos(1)
	if err != nil {
		t.Fatalf("getTodos error: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Fatalf("expected empty slice, got %#v", todos)
	}
}

func TestGetTodo_ForeignRowReadsAsAbsent(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	// the owner filter is part of the predicate, so another user's row scans
	// the same as no row at all
	mock.ExpectQuery(`SELECT (.+) FROM todos\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(7, 2).
		WillReturnRows(sqlmock.NewRows(todoColumns()))

	got, err := s.getTodo(7, 2)
	if err != nil {
		t.Fatalf("getTodo error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil todo, got %+v", got)
	}
}

func TestUpdateTodo_NotOwned(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE todos SET (.+) WHERE id = \$4 AND user_id = \$5`).
		WithArgs("buy milk", true, sqlmock.AnyArg(), 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	now := fixedTime()
	ok, err := s.updateTodo(&todo{ID: 7, UserID: 2, Text: "buy milk", Completed: true, CompletedAt: &now})
	if err != nil {
		t.Fatalf("updateTodo error: %v", err)
	}
	if ok {
		t.Fatal("update against a foreign row must report no match")
	}
}

func TestDeleteTodo(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM todos\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM todos\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(7, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := s.deleteTodo(7, 1)
	if err != nil {
		t.Fatalf("deleteTodo error: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to match a row")
	}

	ok, err = s.deleteTodo(7, 1)
	if err != nil {
		t.Fatalf("deleteTodo error: %v", err)
	}
	if ok {
		t.Fatal("expected second delete to match nothing")
	}
}
