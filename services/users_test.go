package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/vnkhanh/quizmaster-backend/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	users := NewUsers(newTestDB(t))
	in := RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice",
		DOB:      "2001-04-05",
	}
	u, err := users.Register(ctx, in)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.IsAdmin || u.Password == in.Password || u.DOB == nil {
		t.Fatalf("user = %+v", u)
	}

	got, err := users.Authenticate(ctx, "alice@example.com", "secret123")
	if err != nil || got.ID != u.ID {
		t.Fatalf("Authenticate = %v, %v", got, err)
	}

	var ae *AuthorizationError
	if _, err := users.Authenticate(ctx, "alice@example.com", "wrong"); !errors.As(err, &ae) {
		t.Fatalf("wrong password err = %v, want AuthorizationError", err)
	}
	if _, err := users.Authenticate(ctx, "nobody@example.com", "secret123"); !errors.As(err, &ae) {
		t.Fatalf("unknown email err = %v, want AuthorizationError", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	users := NewUsers(newTestDB(t))
	base := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret123"}
	if _, err := users.Register(ctx, base); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"duplicate email", func(in *RegisterInput) { in.Username = "alice2" }},
		{"duplicate username", func(in *RegisterInput) { in.Email = "other@example.com" }},
		{"short password", func(in *RegisterInput) { in.Username, in.Email, in.Password = "bob", "bob@example.com", "123" }},
		{"long password", func(in *RegisterInput) {
			in.Username, in.Email, in.Password = "bob", "bob@example.com", strings.Repeat("x", 73)
		}},
		{"bad dob", func(in *RegisterInput) { in.Username, in.Email, in.DOB = "bob", "bob@example.com", "yesterday" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := users.Register(ctx, in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)

	created, err := users.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	if err != nil || !created {
		t.Fatalf("first EnsureAdmin = %v, %v", created, err)
	}
	created, err = users.EnsureAdmin(ctx, "admin", "admin@example.com", "admin123")
	if err != nil || created {
		t.Fatalf("second EnsureAdmin = %v, %v", created, err)
	}

	a, err := users.Authenticate(ctx, "admin@example.com", "admin123")
	if err != nil || !a.IsAdmin {
		t.Fatalf("admin login = %+v, %v", a, err)
	}
}

func TestDeleteUserPurgesScores(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	root := seedUser(t, db, "root", true)
	alice := seedUser(t, db, "alice", false)
	quiz, _ := seedQuiz(t, db, "Quiz 1", "1")
	for i := 0; i < 2; i++ {
		if _, err := NewScorer(db).SubmitAttempt(ctx, &Principal{UserID: alice.ID}, quiz.ID, nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := NewSessions(db, 0).Start(ctx, alice.ID); err != nil {
		t.Fatal(err)
	}

	p := &Principal{UserID: root.ID, IsAdmin: true}
	purged, err := users.Delete(ctx, p, alice.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if purged != 2 {
		t.Fatalf("purged = %d, want 2", purged)
	}
	if n := count(t, db, &models.Score{}); n != 0 {
		t.Fatalf("scores = %d, want 0", n)
	}
	if n := count(t, db, &models.Session{}); n != 0 {
		t.Fatalf("sessions = %d, want 0", n)
	}

	if _, err := users.Delete(ctx, p, root.ID); err == nil {
		t.Fatal("admin deleted own account")
	}
	if _, err := users.Delete(ctx, p, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}

	list, err := users.List(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != root.ID {
		t.Fatalf("users = %+v, want only root", list)
	}
}
