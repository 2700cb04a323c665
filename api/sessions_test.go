package main

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func sessionColumns() []string {
	return []string{"id", "user_id", "created_at", "expires_at"}
}

func TestCreateSession(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(fixedTime())
	mock.ExpectQuery(`INSERT INTO sessions`).
		WithArgs(sqlmock.AnyArg(), 1, sqlmock.AnyArg()).
		WillReturnRows(rows)

	sess, err := s.createSession(1)
	if err != nil {
		t.Fatalf("createSession error: %v", err)
	}
	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Fatalf("session ID is not a uuid: %q", sess.ID)
	}
	if sess.UserID != 1 {
		t.Fatalf("unexpected session: %+v", sess)
	}
	got := time.Until(sess.ExpiresAt)
	if got < sessionTTL-time.Minute || got > sessionTTL {
		t.Fatalf("unexpected session lifetime %s", got)
	}
}

func TestGetSession_MissingOrExpired(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	// the query predicate filters expired rows, so both a missing and an
	// expired session come back as zero rows
	mock.ExpectQuery(`SELECT (.+) FROM sessions`).
		WithArgs("stale-session-id").
		WillReturnRows(sqlmock.NewRows(sessionColumns()))

	sess, err := s.getSession("stale-session-id")
	if err != nil {
		t.Fatalf("getSession error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestGetSession_ExpiryInPredicate(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(sessionColumns()).
		AddRow("sid", 3, fixedTime(), fixedTime().Add(sessionTTL))
	mock.ExpectQuery(`FROM sessions\s+WHERE id = \$1 AND expires_at > now\(\)`).
		WithArgs("sid").
		WillReturnRows(rows)

	sess, err := s.getSession("sid")
	if err != nil {
		t.Fatalf("getSession error: %v", err)
	}
	if sess == nil || sess.UserID != 3 {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	s, mock, db := newStorageWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM sessions\s+WHERE expires_at <= now\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := s.deleteExpiredSessions()
	if err != nil {
		t.Fatalf("deleteExpiredSessions error: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 deleted sessions, got %d", n)
	}
}
