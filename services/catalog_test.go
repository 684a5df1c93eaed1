package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/gorm"
)

func TestSubjectNamesAreUnique(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	mustSubject(t, c, "Math")

	_, err := c.CreateSubject(ctx, admin, SubjectInput{Name: " Math "})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Fatalf("duplicate create err = %v, want ValidationError on name", err)
	}

	if _, err := c.CreateSubject(ctx, admin, SubjectInput{Name: "   "}); !errors.As(err, &ve) {
		t.Fatalf("blank name err = %v, want ValidationError", err)
	}

	subjects, err := c.ListSubjects(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(subjects) != 1 {
		t.Fatalf("subjects = %d, want 1", len(subjects))
	}
}

func TestUpdateSubjectKeepsOwnName(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	math := mustSubject(t, c, "Math")
	mustSubject(t, c, "Physics")

	got, err := c.UpdateSubject(ctx, admin, math.ID, SubjectInput{Name: "Math", Description: "numbers"})
	if err != nil {
		t.Fatalf("update with unchanged name: %v", err)
	}
	if got.Description != "numbers" {
		t.Fatalf("description = %q, want numbers", got.Description)
	}

	_, err = c.UpdateSubject(ctx, admin, math.ID, SubjectInput{Name: "Physics"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("rename onto existing err = %v, want ValidationError", err)
	}

	_, err = c.UpdateSubject(ctx, admin, 999, SubjectInput{Name: "Chemistry"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing subject err = %v, want not found", err)
	}
}

func TestChapterNamesAreScopedToSubject(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	math := mustSubject(t, c, "Math")
	physics := mustSubject(t, c, "Physics")

	mustChapter(t, c, math.ID, "Basics")
	mustChapter(t, c, physics.ID, "Basics")

	_, err := c.CreateChapter(ctx, admin, math.ID, ChapterInput{Name: "Basics"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("duplicate chapter err = %v, want ValidationError", err)
	}

	_, err = c.CreateChapter(ctx, admin, 999, ChapterInput{Name: "Orphan"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("chapter under missing subject err = %v, want not found", err)
	}

	listed, err := c.ListChapters(ctx, admin, math.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed.Chapters) != 1 || listed.Chapters[0].Name != "Basics" {
		t.Fatalf("chapters = %+v, want [Basics]", listed.Chapters)
	}
}

func TestQuizValidation(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	ch := mustChapter(t, c, mustSubject(t, c, "Math").ID, "Basics")
	other := mustChapter(t, c, mustSubject(t, c, "Physics").ID, "Motion")
	mustQuiz(t, c, ch.ID, "Quiz 1")

	cases := []struct {
		name  string
		in    QuizInput
		field string
	}{
		{"duplicate across chapters", QuizInput{Name: "Quiz 1", Date: "2025-01-01", Duration: "00:30"}, "name"},
		{"bad date", QuizInput{Name: "Quiz 2", Date: "01-01-2025", Duration: "00:30"}, "date"},
		{"bad duration", QuizInput{Name: "Quiz 2", Date: "2025-01-01", Duration: "30m"}, "duration"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.CreateQuiz(ctx, admin, other.ID, tc.in)
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("err = %v, want ValidationError on %s", err, tc.field)
			}
		})
	}
}

func TestQuestionCorrectOptionRange(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	ch := mustChapter(t, c, mustSubject(t, c, "Math").ID, "Basics")
	quiz := mustQuiz(t, c, ch.ID, "Quiz 1")

	in := QuestionInput{Statement: "2+2?", Option1: "3", Option2: "4", Option3: "5", Option4: "6", CorrectOption: "5"}
	_, err := c.CreateQuestion(ctx, admin, quiz.ID, in)
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "correct_option" {
		t.Fatalf("err = %v, want ValidationError on correct_option", err)
	}

	in.CorrectOption = "2"
	q, err := c.CreateQuestion(ctx, admin, quiz.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if q.CorrectOption != 2 {
		t.Fatalf("correct option = %d, want 2", q.CorrectOption)
	}

	in.Option3 = ""
	if _, err := c.UpdateQuestion(ctx, admin, q.ID, in); !errors.As(err, &ve) || ve.Field != "option3" {
		t.Fatalf("update err = %v, want ValidationError on option3", err)
	}
	stored, err := c.GetQuestion(ctx, admin, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Option3 != "5" {
		t.Fatalf("option3 = %q after rejected update, want 5", stored.Option3)
	}
}

func TestDeleteSubjectCascades(t *testing.T) {
	db := newTestDB(t)
	c := NewCatalog(db)
	user := seedUser(t, db, "alice", false)

	math := mustSubject(t, c, "Math")
	keep := mustSubject(t, c, "Physics")
	for _, chName := range []string{"Basics", "Algebra"} {
		ch := mustChapter(t, c, math.ID, chName)
		quiz := mustQuiz(t, c, ch.ID, chName+" quiz")
		mustQuestion(t, c, quiz.ID, "1")
		mustQuestion(t, c, quiz.ID, "2")
		if err := db.Create(&models.Score{QuizID: quiz.ID, UserID: user.ID, TotalScored: 1}).Error; err != nil {
			t.Fatal(err)
		}
	}
	keepQuiz := mustQuiz(t, c, mustChapter(t, c, keep.ID, "Motion").ID, "Motion quiz")
	mustQuestion(t, c, keepQuiz.ID, "3")

	rep, err := c.DeleteSubject(ctx, admin, math.ID)
	if err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}
	want := DeleteReport{Subjects: 1, Chapters: 2, Quizzes: 2, Questions: 4, Scores: 2}
	if *rep != want {
		t.Fatalf("report = %+v, want %+v", *rep, want)
	}

	if n := count(t, db, &models.Subject{}); n != 1 {
		t.Fatalf("subjects left = %d, want 1", n)
	}
	if n := count(t, db, &models.Question{}); n != 1 {
		t.Fatalf("questions left = %d, want 1", n)
	}
	if n := count(t, db, &models.Score{}); n != 0 {
		t.Fatalf("scores left = %d, want 0", n)
	}

	if _, err := c.DeleteSubject(ctx, admin, math.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}
}

func TestDeleteQuizRemovesScores(t *testing.T) {
	db := newTestDB(t)
	c := NewCatalog(db)
	user := seedUser(t, db, "alice", false)
	ch := mustChapter(t, c, mustSubject(t, c, "Math").ID, "Basics")
	quiz := mustQuiz(t, c, ch.ID, "Quiz 1")
	mustQuestion(t, c, quiz.ID, "1")
	db.Create(&models.Score{QuizID: quiz.ID, UserID: user.ID})

	rep, err := c.DeleteQuiz(ctx, admin, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Quizzes != 1 || rep.Questions != 1 || rep.Scores != 1 {
		t.Fatalf("report = %+v", *rep)
	}
	if n := count(t, db, &models.Chapter{}); n != 1 {
		t.Fatalf("chapters = %d, want parent kept", n)
	}
}

func TestNonAdminCannotWriteCatalog(t *testing.T) {
	db := newTestDB(t)
	c := NewCatalog(db)
	math := mustSubject(t, c, "Math")
	user := &Principal{UserID: 2}

	var ae *AuthorizationError
	if _, err := c.CreateSubject(ctx, user, SubjectInput{Name: "History"}); !errors.As(err, &ae) || !ae.TerminateSession {
		t.Fatalf("create err = %v, want AuthorizationError ending the session", err)
	}
	if _, err := c.DeleteSubject(ctx, user, math.ID); !errors.As(err, &ae) {
		t.Fatalf("delete err = %v, want AuthorizationError", err)
	}
	if _, err := c.ListSubjects(ctx, nil); !errors.As(err, &ae) || ae.TerminateSession {
		t.Fatalf("anonymous list err = %v, want AuthorizationError", err)
	}
	if n := count(t, db, &models.Subject{}); n != 1 {
		t.Fatalf("subjects = %d, want 1", n)
	}
}

func TestOverviewAndPublished(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	ch := mustChapter(t, c, mustSubject(t, c, "Math").ID, "Basics")
	withQuestions := mustQuiz(t, c, ch.ID, "Quiz 1")
	mustQuiz(t, c, ch.ID, "Empty quiz")
	mustQuestion(t, c, withQuestions.ID, "1")
	mustQuestion(t, c, withQuestions.ID, "4")

	rows, err := c.QuizOverview(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].ChapterName != "Basics" || rows[0].SubjectName != "Math" {
		t.Fatalf("overview = %+v", rows)
	}

	published, err := c.PublishedQuizzes(ctx, &Principal{UserID: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 || published[0].ID != withQuestions.ID || published[0].QuestionCount != 2 {
		t.Fatalf("published = %+v, want only quiz %d with 2 questions", published, withQuestions.ID)
	}

	choices, err := c.ChapterChoices(ctx, admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(choices) != 1 || choices[0].SubjectName != "Math" {
		t.Fatalf("choices = %+v", choices)
	}
}

func TestUpdateChapterNames(t *testing.T) {
	cases := []struct {
		name    string
		newName string
		wantErr bool
	}{
		{"taken in same subject", "Algebra", true},
		{"taken only in other subject", "Motion", false},
		{"unchanged", "Basics", false},
		{"fresh", "Geometry", false},
		{"blank", "  ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCatalog(newTestDB(t))
			math := mustSubject(t, c, "Math")
			basics := mustChapter(t, c, math.ID, "Basics")
			mustChapter(t, c, math.ID, "Algebra")
			mustChapter(t, c, mustSubject(t, c, "Physics").ID, "Motion")

			got, err := c.UpdateChapter(ctx, admin, basics.ID, ChapterInput{Name: tc.newName, Description: "d"})
			if tc.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) || ve.Field != "name" {
					t.Fatalf("err = %v, want ValidationError on name", err)
				}
				stored, err := c.GetChapter(ctx, admin, basics.ID)
				if err != nil || stored.Name != "Basics" {
					t.Fatalf("chapter after rejected update = %+v, %v", stored, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateChapter: %v", err)
			}
			if got.Name != tc.newName || got.Description != "d" || got.SubjectID != math.ID {
				t.Fatalf("chapter = %+v", got)
			}
		})
	}

	c := NewCatalog(newTestDB(t))
	if _, err := c.UpdateChapter(ctx, admin, 999, ChapterInput{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing chapter err = %v, want not found", err)
	}
}

func TestUpdateQuiz(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	ch := mustChapter(t, c, mustSubject(t, c, "Math").ID, "Basics")
	q1 := mustQuiz(t, c, ch.ID, "Quiz 1")
	mustQuiz(t, c, ch.ID, "Quiz 2")

	cases := []struct {
		name  string
		id    uint
		in    QuizInput
		field string
	}{
		{"keeps own name", q1.ID, QuizInput{Name: "Quiz 1", Date: "2025-04-02", Duration: "02:00"}, ""},
		{"renamed", q1.ID, QuizInput{Name: "Quiz 1b", Date: "2025-04-02", Duration: "02:00"}, ""},
		{"name of another quiz", q1.ID, QuizInput{Name: "Quiz 2", Date: "2025-04-02", Duration: "02:00"}, "name"},
		{"bad duration", q1.ID, QuizInput{Name: "Quiz 1b", Date: "2025-04-02", Duration: "2 hours"}, "duration"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.UpdateQuiz(ctx, admin, tc.id, tc.in)
			if tc.field != "" {
				var ve *ValidationError
				if !errors.As(err, &ve) || ve.Field != tc.field {
					t.Fatalf("err = %v, want ValidationError on %s", err, tc.field)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateQuiz: %v", err)
			}
			if got.Name != tc.in.Name || models.FormatDate(got.Date) != "2025-04-02" || models.FormatDuration(got.Duration) != "02:00" {
				t.Fatalf("quiz = %+v", got)
			}
		})
	}

	stored, err := c.GetQuiz(ctx, admin, q1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Quiz 1b" || time.Duration(stored.Duration) != 2*time.Hour {
		t.Fatalf("stored quiz = %+v", stored)
	}
	if _, err := c.UpdateQuiz(ctx, admin, 999, cases[0].in); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing quiz err = %v, want not found", err)
	}
}

func TestDeleteChapterCascades(t *testing.T) {
	db := newTestDB(t)
	c := NewCatalog(db)
	user := seedUser(t, db, "alice", false)
	math := mustSubject(t, c, "Math")
	basics := mustChapter(t, c, math.ID, "Basics")
	algebra := mustChapter(t, c, math.ID, "Algebra")

	withQuestion := mustQuiz(t, c, basics.ID, "Quiz 1")
	mustQuiz(t, c, basics.ID, "Quiz 2")
	mustQuestion(t, c, withQuestion.ID, "1")
	if err := db.Create(&models.Score{QuizID: withQuestion.ID, UserID: user.ID, TotalScored: 1}).Error; err != nil {
		t.Fatal(err)
	}
	kept := mustQuiz(t, c, algebra.ID, "Quiz 3")
	mustQuestion(t, c, kept.ID, "2")

	rep, err := c.DeleteChapter(ctx, admin, basics.ID)
	if err != nil {
		t.Fatalf("DeleteChapter: %v", err)
	}
	want := DeleteReport{Chapters: 1, Quizzes: 2, Questions: 1, Scores: 1}
	if *rep != want {
		t.Fatalf("report = %+v, want %+v", *rep, want)
	}

	listed, err := c.ListChapters(ctx, admin, math.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed.Chapters) != 1 || listed.Chapters[0].ID != algebra.ID {
		t.Fatalf("chapters = %+v, want only Algebra", listed.Chapters)
	}
	if n := count(t, db, &models.Quiz{}); n != 1 {
		t.Fatalf("quizzes = %d, want 1", n)
	}
	if n := count(t, db, &models.Question{}); n != 1 {
		t.Fatalf("questions = %d, want 1", n)
	}
	if _, err := c.DeleteChapter(ctx, admin, basics.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}
}

func TestListQuizzesAndQuestions(t *testing.T) {
	c := NewCatalog(newTestDB(t))
	ch := mustChapter(t, c, mustSubject(t, c, "Math").ID, "Basics")

	empty, err := c.ListQuizzes(ctx, admin, ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Quizzes == nil || len(empty.Quizzes) != 0 {
		t.Fatalf("quizzes = %v, want empty list", empty.Quizzes)
	}

	quiz := mustQuiz(t, c, ch.ID, "Quiz 1")
	first := mustQuestion(t, c, quiz.ID, "1")
	second := mustQuestion(t, c, quiz.ID, "4")

	listed, err := c.ListQuizzes(ctx, admin, ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed.Quizzes) != 1 || listed.Quizzes[0].ID != quiz.ID {
		t.Fatalf("quizzes = %+v", listed.Quizzes)
	}

	withQuestions, err := c.ListQuestions(ctx, admin, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(withQuestions.Questions) != 2 || withQuestions.Questions[0].ID != first.ID || withQuestions.Questions[1].ID != second.ID {
		t.Fatalf("questions = %+v", withQuestions.Questions)
	}

	if _, err := c.ListQuizzes(ctx, admin, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing chapter err = %v, want not found", err)
	}
	if _, err := c.ListQuestions(ctx, admin, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing quiz err = %v, want not found", err)
	}
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	c := NewCatalog(db)
	ch := mustChapter(t, c, mustSubject(t, c, "Math").ID, "Basics")
	quiz := mustQuiz(t, c, ch.ID, "Quiz 1")
	gone := mustQuestion(t, c, quiz.ID, "1")
	kept := mustQuestion(t, c, quiz.ID, "2")

	if err := c.DeleteQuestion(ctx, admin, gone.ID); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	listed, err := c.ListQuestions(ctx, admin, quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed.Questions) != 1 || listed.Questions[0].ID != kept.ID {
		t.Fatalf("questions = %+v, want only %d", listed.Questions, kept.ID)
	}
	if err := c.DeleteQuestion(ctx, admin, gone.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}
	var ae *AuthorizationError
	if err := c.DeleteQuestion(ctx, &Principal{UserID: 2}, kept.ID); !errors.As(err, &ae) {
		t.Fatalf("user delete err = %v, want AuthorizationError", err)
	}
}

func TestStoreErr(t *testing.T) {
	persistence := errors.New("connection reset")
	cases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"nil", nil, func(err error) bool { return err == nil }},
		{"duplicate key", gorm.ErrDuplicatedKey, isValidation},
		{"wrapped duplicate key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), isValidation},
		{"validation passes through", invalid("name", "bad"), isValidation},
		{"not found passes through", &NotFoundError{Entity: "quiz", ID: 1}, func(err error) bool { return errors.Is(err, ErrNotFound) }},
		{"other store error", persistence, func(err error) bool {
			var pe *PersistenceError
			return errors.As(err, &pe) && pe.Op == "op" && errors.Is(err, persistence)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := storeErr("op", tc.err); !tc.check(got) {
				t.Fatalf("storeErr(%v) = %#v", tc.err, got)
			}
		})
	}
}

func TestUniqueViolationBecomesValidationError(t *testing.T) {
	db := newTestDB(t)
	mustSubject(t, NewCatalog(db), "Math")

	// bypass the service check so the unique index itself fires
	err := db.Create(&models.Subject{Name: "Math"}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("create err = %v, want gorm.ErrDuplicatedKey", err)
	}
	if got := storeErr("create subject", err); !isValidation(got) {
		t.Fatalf("storeErr = %v, want ValidationError", got)
	}
}

func isValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
