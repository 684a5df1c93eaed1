package controllers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/middleware"
	"github.com/vnkhanh/quizmaster-backend/services"
)

// AttemptController serves the user dashboard and the quiz attempt flow.
type AttemptController struct {
	base
	catalog *services.Catalog
	scorer  *services.Scorer
	history *services.History
}

func NewAttemptController(catalog *services.Catalog, scorer *services.Scorer, history *services.History, sessions *services.Sessions) *AttemptController {
	return &AttemptController{base: base{sessions: sessions}, catalog: catalog, scorer: scorer, history: history}
}

// AttemptInput is the JSON body of a submission, keyed by question id.
// Choices may be numbers or numeric strings.
type AttemptInput struct {
	Answers map[string]any `json:"answers"`
}

// GET /user/dashboard
func (h *AttemptController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	p := middleware.CurrentPrincipal(c)
	quizzes, err := h.catalog.PublishedQuizzes(ctx, p)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	attempts, err := h.history.ListAttempts(ctx, p)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes, "attempts": attempts})
}

// GET /user/quiz/:quiz_id/attempt
func (h *AttemptController) Sheet(c *gin.Context) {
	quizID, ok := idParam(c, "quiz_id")
	if !ok {
		return
	}
	sheet, err := h.scorer.AttemptSheet(c.Request.Context(), middleware.CurrentPrincipal(c), quizID)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// POST /user/quiz/:quiz_id/attempt
func (h *AttemptController) Submit(c *gin.Context) {
	quizID, ok := idParam(c, "quiz_id")
	if !ok {
		return
	}
	answers, err := readAnswers(c)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	score, err := h.scorer.SubmitAttempt(c.Request.Context(), middleware.CurrentPrincipal(c), quizID, answers)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	result := fmt.Sprintf("/user/quiz/%d/result", quizID)
	c.Header("Location", result)
	c.JSON(http.StatusCreated, gin.H{"message": "quiz submitted", "score": score, "result": result})
}

// GET /user/quiz/:quiz_id/result
func (h *AttemptController) Result(c *gin.Context) {
	quizID, ok := idParam(c, "quiz_id")
	if !ok {
		return
	}
	res, err := h.scorer.LatestAttempt(c.Request.Context(), middleware.CurrentPrincipal(c), quizID)
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"score":          res.Score,
		"total_scored":   res.Score.TotalScored,
		"question_count": res.QuestionCount,
	})
}

// readAnswers accepts either {"answers": {"<question id>": n}} or form
// fields named q<question id>. Unusable ids or choices are left out and so
// count as unanswered. Only a body that is not JSON at all is rejected.
func readAnswers(c *gin.Context) (map[uint]int, error) {
	answers := make(map[uint]int)

	if c.ContentType() == gin.MIMEJSON {
		var input AttemptInput
		if err := c.ShouldBindJSON(&input); err != nil {
			if errors.Is(err, io.EOF) {
				return answers, nil
			}
			return nil, &services.ValidationError{Field: "answers", Message: "malformed answers: " + err.Error()}
		}
		for key, value := range input.Answers {
			id, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
			if err != nil {
				continue
			}
			if choice, ok := choiceOf(value); ok {
				answers[uint(id)] = choice
			}
		}
		return answers, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, &services.ValidationError{Field: "answers", Message: "malformed form body"}
	}
	for key, values := range c.Request.PostForm {
		rest, found := strings.CutPrefix(key, "q")
		if !found || len(values) == 0 {
			continue
		}
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			continue
		}
		if choice, ok := choiceOf(values[0]); ok {
			answers[uint(id)] = choice
		}
	}
	return answers, nil
}

// choiceOf reads a selected option from a decoded JSON value or a form value.
func choiceOf(v any) (int, bool) {
	switch v := v.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}
