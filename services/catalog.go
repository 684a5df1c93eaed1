package services

import (
	"context"
	"encoding/json"

	"github.com/vnkhanh/quizmaster-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Catalog owns the Subject -> Chapter -> Quiz -> Question hierarchy. Every
// write runs in one transaction and validates before touching the store.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// DeleteReport counts the rows removed by a cascading delete.
type DeleteReport struct {
	Subjects  int64 `json:"subjects"`
	Chapters  int64 `json:"chapters"`
	Quizzes   int64 `json:"quizzes"`
	Questions int64 `json:"questions"`
	Scores    int64 `json:"scores"`
}

// QuizOverviewRow is a quiz flattened with the names of its parents.
type QuizOverviewRow struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Date        datatypes.Date `json:"date"`
	Duration    datatypes.Time `json:"duration"`
	ChapterName string         `json:"chapter_name"`
	SubjectName string         `json:"subject_name"`
}

func (r QuizOverviewRow) MarshalJSON() ([]byte, error) {
	type plain QuizOverviewRow
	return json.Marshal(struct {
		plain
		Date     string `json:"date"`
		Duration string `json:"duration"`
	}{plain(r), models.FormatDate(r.Date), models.FormatDuration(r.Duration)})
}

type ChapterChoice struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	SubjectName string `json:"subject_name"`
}

// QuizSummary is the quiz metadata shown next to attempts and on the dashboard.
type QuizSummary struct {
	ID            uint           `json:"id"`
	ChapterID     uint           `json:"chapter_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Date          datatypes.Date `json:"date"`
	Duration      datatypes.Time `json:"duration"`
	QuestionCount int64          `json:"question_count,omitempty"`
}

func (q QuizSummary) MarshalJSON() ([]byte, error) {
	type plain QuizSummary
	return json.Marshal(struct {
		plain
		Date     string `json:"date"`
		Duration string `json:"duration"`
	}{plain(q), models.FormatDate(q.Date), models.FormatDuration(q.Duration)})
}

func summarize(q models.Quiz) QuizSummary {
	return QuizSummary{
		ID:          q.ID,
		ChapterID:   q.ChapterID,
		Name:        q.Name,
		Description: q.Description,
		Date:        q.Date,
		Duration:    q.Duration,
	}
}

type Stats struct {
	Subjects  int64 `json:"subjects"`
	Chapters  int64 `json:"chapters"`
	Quizzes   int64 `json:"quizzes"`
	Questions int64 `json:"questions"`
	Users     int64 `json:"users"`
	Attempts  int64 `json:"attempts"`
}

func (s *Catalog) Stats(ctx context.Context, p *Principal) (*Stats, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	var st Stats
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Subject{}, &st.Subjects},
		{&models.Chapter{}, &st.Chapters},
		{&models.Quiz{}, &st.Quizzes},
		{&models.Question{}, &st.Questions},
		{&models.User{}, &st.Users},
		{&models.Score{}, &st.Attempts},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, storeErr("count", err)
		}
	}
	return &st, nil
}

// QuizOverview lists every quiz joined with its chapter and subject names.
func (s *Catalog) QuizOverview(ctx context.Context, p *Principal) ([]QuizOverviewRow, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	rows := []QuizOverviewRow{}
	err := s.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Select("quizzes.id, quizzes.name, quizzes.description, quizzes.date, quizzes.duration, " +
			"chapters.name AS chapter_name, subjects.name AS subject_name").
		Joins("JOIN chapters ON chapters.id = quizzes.chapter_id").
		Joins("JOIN subjects ON subjects.id = chapters.subject_id").
		Order("quizzes.id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("list quiz overview", err)
	}
	return rows, nil
}

// ChapterChoices lists every chapter with its subject name.
func (s *Catalog) ChapterChoices(ctx context.Context, p *Principal) ([]ChapterChoice, error) {
	if err := RequireAdmin(p); err != nil {
		return nil, err
	}
	rows := []ChapterChoice{}
	err := s.db.WithContext(ctx).
		Model(&models.Chapter{}).
		Select("chapters.id, chapters.name, subjects.name AS subject_name").
		Joins("JOIN subjects ON subjects.id = chapters.subject_id").
		Order("subjects.name, chapters.name").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("list chapter choices", err)
	}
	return rows, nil
}

// PublishedQuizzes lists the quizzes a user can attempt: those with at least
// one question.
func (s *Catalog) PublishedQuizzes(ctx context.Context, p *Principal) ([]QuizSummary, error) {
	if err := RequireAuthenticated(p); err != nil {
		return nil, err
	}
	rows := []QuizSummary{}
	err := s.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Select("quizzes.id, quizzes.chapter_id, quizzes.name, quizzes.description, quizzes.date, quizzes.duration, " +
			"COUNT(questions.id) AS question_count").
		Joins("JOIN questions ON questions.quiz_id = quizzes.id").
		Group("quizzes.id, quizzes.chapter_id, quizzes.name, quizzes.description, quizzes.date, quizzes.duration").
		Order("quizzes.date, quizzes.id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("list published quizzes", err)
	}
	return rows, nil
}

// taken reports whether a row of model matches the condition, ignoring the
// row with id excludeID (0 excludes nothing).
func taken(tx *gorm.DB, model any, excludeID uint, query string, args ...any) (bool, error) {
	q := tx.Model(model).Where(query, args...)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Cascades run children first so no foreign key is ever left dangling.

func cascadeSubject(tx *gorm.DB, subjectID uint, rep *DeleteReport) error {
	var chapterIDs []uint
	if err := tx.Model(&models.Chapter{}).Where("subject_id = ?", subjectID).Pluck("id", &chapterIDs).Error; err != nil {
		return err
	}
	if err := cascadeChapters(tx, chapterIDs, rep); err != nil {
		return err
	}
	res := tx.Delete(&models.Subject{}, subjectID)
	rep.Subjects += res.RowsAffected
	return res.Error
}

func cascadeChapters(tx *gorm.DB, chapterIDs []uint, rep *DeleteReport) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	var quizIDs []uint
	if err := tx.Model(&models.Quiz{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if err := cascadeQuizzes(tx, quizIDs, rep); err != nil {
		return err
	}
	res := tx.Where("id IN ?", chapterIDs).Delete(&models.Chapter{})
	rep.Chapters += res.RowsAffected
	return res.Error
}

func cascadeQuizzes(tx *gorm.DB, quizIDs []uint, rep *DeleteReport) error {
	if len(quizIDs) == 0 {
		return nil
	}
	res := tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Score{})
	if res.Error != nil {
		return res.Error
	}
	rep.Scores += res.RowsAffected

	res = tx.Where("quiz_id IN ?", quizIDs).Delete(&models.Question{})
	if res.Error != nil {
		return res.Error
	}
	rep.Questions += res.RowsAffected

	res = tx.Where("id IN ?", quizIDs).Delete(&models.Quiz{})
	rep.Quizzes += res.RowsAffected
	return res.Error
}
