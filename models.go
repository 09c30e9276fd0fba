package main

import (
	"time"

	"gorm.io/datatypes"
)

// --- Quiz (working copy) ---

type Status string

const (
	StatusDraft        Status = "Draft"
	StatusNeedApproval Status = "Need Approval"
	StatusApproved     Status = "Approved"
	StatusCompleted    Status = "Completed"
	StatusArchive      Status = "Archive"
)

var allStatuses = []Status{StatusDraft, StatusNeedApproval, StatusApproved, StatusCompleted, StatusArchive}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

const (
	defaultQuizTitle = "Untitled Quiz"
	maxAnswers       = 4
)

type Answer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answers  []Answer `json:"answers"`
}

// HistoryEntry is one line of the persisted audit trail. It is unrelated to
// the undo/redo log kept by EditHistory.
type HistoryEntry struct {
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type Quiz struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Category     string         `json:"category"`
	Status       Status         `json:"status"`
	Tags         []string       `json:"tags"`
	Questions    []Question     `json:"questions"`
	History      []HistoryEntry `json:"history"`
	LastModified time.Time      `json:"lastModified"`
	ShareID      string         `json:"shareId,omitempty"`
}

// Clone returns a deep copy; snapshots handed to the undo log and to the
// autosave goroutine never share slices with the working copy.
func (q Quiz) Clone() Quiz {
	out := q
	out.Tags = cloneSlice(q.Tags)
	out.History = cloneSlice(q.History)
	out.Questions = cloneSlice(q.Questions)
	for i := range out.Questions {
		out.Questions[i].Answers = cloneSlice(out.Questions[i].Answers)
	}
	return out
}

func cloneSlice[T any](xs []T) []T {
	if xs == nil {
		return nil
	}
	out := make([]T, len(xs))
	copy(out, xs)
	return out
}

// --- Persistence ---

type QuizRecord struct {
	ID           string                            `gorm:"primaryKey;size:64"`
	Title        string                            `gorm:"not null"`
	Category     string                            `gorm:"index"`
	Status       string                            `gorm:"size:16;not null;default:Draft"`
	Tags         datatypes.JSONSlice[string]       `gorm:"not null"`
	Questions    datatypes.JSONSlice[Question]     `gorm:"not null"`
	History      datatypes.JSONSlice[HistoryEntry] `gorm:"not null"`
	ShareID      *string                           `gorm:"uniqueIndex;size:64"` // NULL until first share
	LastModified time.Time                         `gorm:"index;not null"`
	UpdatedAt    time.Time
}

func (QuizRecord) TableName() string { return "quizzes" }

const (
	settingCategories = "categories"
	settingUserNames  = "userNames"
)

type Setting struct {
	Name      string                      `gorm:"primaryKey;size:32"`
	List      datatypes.JSONSlice[string] `gorm:"not null"`
	UpdatedAt time.Time
}

func recordFromQuiz(q Quiz) QuizRecord {
	rec := QuizRecord{
		ID:           q.ID,
		Title:        q.Title,
		Category:     q.Category,
		Status:       string(q.Status),
		Tags:         datatypes.JSONSlice[string](nonNil(q.Tags)),
		Questions:    datatypes.JSONSlice[Question](nonNil(q.Questions)),
		History:      datatypes.JSONSlice[HistoryEntry](nonNil(q.History)),
		LastModified: q.LastModified,
	}
	if q.ShareID != "" {
		id := q.ShareID
		rec.ShareID = &id
	}
	return rec
}

func (r QuizRecord) toQuiz() Quiz {
	q := Quiz{
		ID:           r.ID,
		Title:        r.Title,
		Category:     r.Category,
		Status:       Status(r.Status),
		Tags:         []string(r.Tags),
		Questions:    []Question(r.Questions),
		History:      []HistoryEntry(r.History),
		LastModified: r.LastModified,
	}
	if r.ShareID != nil {
		q.ShareID = *r.ShareID
	}
	if q.Status == "" {
		q.Status = StatusDraft
	}
	return q
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
