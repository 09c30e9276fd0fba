package main

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

/*** DTOs for the public preview (no answer key) ***/

type PreviewAnswerDTO struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type PreviewQuestionDTO struct {
	ID       string             `json:"id"`
	Question string             `json:"question"`
	Answers  []PreviewAnswerDTO `json:"answers"`
}

type PreviewDTO struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Category  string               `json:"category"`
	Questions []PreviewQuestionDTO `json:"questions"`
}

func toPreview(q Quiz) PreviewDTO {
	out := PreviewDTO{ID: q.ID, Title: q.Title, Category: q.Category}
	out.Questions = make([]PreviewQuestionDTO, 0, len(q.Questions))
	for _, qu := range q.Questions {
		answers := make([]PreviewAnswerDTO, 0, len(qu.Answers))
		for i, a := range qu.Answers {
			answers = append(answers, PreviewAnswerDTO{Index: i, Text: a.Text})
		}
		out.Questions = append(out.Questions, PreviewQuestionDTO{ID: qu.ID, Question: qu.Question, Answers: answers})
	}
	return out
}

type ScoreReq struct {
	// question id -> selected answer indices
	Selected Selections `json:"selected"`
}

// respondErr maps domain errors onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	var warnings ExportWarnings
	switch {
	case errors.As(err, &warnings):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cannot export quiz", "warnings": []string(warnings)})
	case errors.Is(err, ErrQuizNotFound), errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrAnswerNotFound),
		errors.Is(err, ErrUserNameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoQuizOpen), errors.Is(err, ErrLastQuestion),
		errors.Is(err, ErrDuplicateUserName), errors.Is(err, ErrLastUserName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrUnknownCategory),
		errors.Is(err, ErrInvalidQuestions), errors.Is(err, ErrUnknownUser), errors.Is(err, ErrEmptyUserName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrBadPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

// respondEdit answers an editor call with the session state, or the error.
func respondEdit(c *gin.Context, sess *Session, err error) {
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.State())
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad " + name})
		return 0, false
	}
	return n, true
}

/*** Quiz list ***/

// GET /api/v1/quizzes?category=&status=&sort=
func ListQuizzes(list *QuizList) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f ListFilter
		if err := c.ShouldBindQuery(&f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad filter"})
			return
		}
		c.JSON(http.StatusOK, list.Filter(f))
	}
}

// POST /api/v1/quizzes
func CreateQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		if _, err := sess.Create(c.Request.Context()); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, sess.State())
	}
}

// DELETE /api/v1/quizzes/:id
func DeleteQuiz(list *QuizList) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, ok := list.Get(id); !ok {
			respondErr(c, ErrQuizNotFound)
			return
		}
		sessionFrom(c).Delete(c.Request.Context(), id)
		c.Status(http.StatusNoContent)
	}
}

/*** Editing session ***/

func GetSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, sessionFrom(c).State())
	}
}

func OpenQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		_, err := sess.Open(c.Request.Context(), c.Param("id"))
		respondEdit(c, sess, err)
	}
}

func OpenSharedQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		_, err := sess.OpenShared(c.Param("shareId"))
		respondEdit(c, sess, err)
	}
}

func CloseQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		sess.Close()
		c.JSON(http.StatusOK, sess.State())
	}
}

// PATCH /api/v1/session/quiz
func UpdateQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuizUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		sess := sessionFrom(c)
		_, err := sess.ApplyUpdate(req)
		respondEdit(c, sess, err)
	}
}

func AddQuestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		_, err := sess.AddQuestion()
		respondEdit(c, sess, err)
	}
}

type UpdateQuestionReq struct {
	Question string `json:"question"`
}

func UpdateQuestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := intParam(c, "q")
		if !ok {
			return
		}
		var req UpdateQuestionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		sess := sessionFrom(c)
		_, err := sess.UpdateQuestion(q, req.Question)
		respondEdit(c, sess, err)
	}
}

func DeleteQuestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := intParam(c, "q")
		if !ok {
			return
		}
		sess := sessionFrom(c)
		_, err := sess.DeleteQuestion(q)
		respondEdit(c, sess, err)
	}
}

type MoveQuestionReq struct {
	Direction Direction `json:"direction" binding:"required,oneof=up down"`
}

func MoveQuestion() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := intParam(c, "q")
		if !ok {
			return
		}
		var req MoveQuestionReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
			return
		}
		sess := sessionFrom(c)
		_, err := sess.MoveQuestion(q, req.Direction)
		respondEdit(c, sess, err)
	}
}

func AddAnswer() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := intParam(c, "q")
		if !ok {
			return
		}
		sess := sessionFrom(c)
		_, err := sess.AddAnswer(q)
		respondEdit(c, sess, err)
	}
}

func UpdateAnswer() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := intParam(c, "q")
		if !ok {
			return
		}
		a, ok := intParam(c, "a")
		if !ok {
			return
		}
		var req AnswerUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		sess := sessionFrom(c)
		_, err := sess.UpdateAnswer(q, a, req)
		respondEdit(c, sess, err)
	}
}

func DeleteAnswer() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := intParam(c, "q")
		if !ok {
			return
		}
		a, ok := intParam(c, "a")
		if !ok {
			return
		}
		sess := sessionFrom(c)
		_, err := sess.DeleteAnswer(q, a)
		respondEdit(c, sess, err)
	}
}

type TagReq struct {
	Tag string `json:"tag" binding:"required"`
}

func AddTag() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TagReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tag required"})
			return
		}
		sess := sessionFrom(c)
		_, err := sess.AddTag(req.Tag)
		respondEdit(c, sess, err)
	}
}

func RemoveTag() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		_, err := sess.RemoveTag(c.Param("tag"))
		respondEdit(c, sess, err)
	}
}

func Undo() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		_, _, err := sess.Undo()
		respondEdit(c, sess, err)
	}
}

func Redo() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		_, _, err := sess.Redo()
		respondEdit(c, sess, err)
	}
}

func SaveQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		_, err := sess.Save(c.Request.Context())
		respondEdit(c, sess, err)
	}
}

// POST /api/v1/session/share
func ShareQuiz(baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		shareID, err := sess.Share(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"shareId": shareID, "url": shareURL(baseURL, shareID)})
	}
}

func shareURL(base, shareID string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?quiz=" + url.QueryEscape(shareID)
	}
	q := u.Query()
	q.Set("quiz", shareID)
	u.RawQuery = q.Encode()
	return u.String()
}

func ScoreCurrent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScoreReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		q, ok := sessionFrom(c).Current()
		if !ok {
			respondErr(c, ErrNoQuizOpen)
			return
		}
		c.JSON(http.StatusOK, ScoreQuiz(q, req.Selected))
	}
}

// GET /api/v1/session/export
func ExportQuiz() gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := sessionFrom(c).Current()
		if !ok {
			respondErr(c, ErrNoQuizOpen)
			return
		}
		body, err := ExportWorkbook(q)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": ExportFileName(q)}))
		c.Data(http.StatusOK, xlsxContentType, body)
	}
}

/*** Public preview via share link ***/

func findShared(c *gin.Context, list *QuizList, store *Store) (Quiz, bool) {
	shareID := c.Param("shareId")
	if q, ok := list.FindByShareID(shareID); ok {
		return q, true
	}
	q, err := store.GetQuizByShareID(c.Request.Context(), shareID)
	if err != nil {
		respondErr(c, err)
		return Quiz{}, false
	}
	return q, true
}

// GET /api/v1/shared/:shareId
func GetSharedQuiz(list *QuizList, store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, ok := findShared(c, list, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, toPreview(q))
	}
}

// POST /api/v1/shared/:shareId/score
func ScoreSharedQuiz(list *QuizList, store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScoreReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		q, ok := findShared(c, list, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, ScoreQuiz(q, req.Selected))
	}
}
