package main

import "testing"

func TestIsCorrectAllOrNothing(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		correct  []int
		want     bool
	}{
		{
			name:     "exact match",
			selected: []int{0, 1},
			correct:  []int{0, 1},
			want:     true,
		},
		{
			name:     "order does not matter",
			selected: []int{2, 0},
			correct:  []int{0, 2},
			want:     true,
		},
		{
			name:     "missing option",
			selected: []int{0},
			correct:  []int{0, 1},
			want:     false,
		},
		{
			name:     "extra option",
			selected: []int{0, 1, 2},
			correct:  []int{0, 1},
			want:     false,
		},
		{
			name:     "duplicate option",
			selected: []int{0, 0},
			correct:  []int{0, 1},
			want:     false,
		},
		{
			name:     "repeated pick of the only correct option",
			selected: []int{0, 0},
			correct:  []int{0},
			want:     true,
		},
		{
			name:     "repeated pick plus a wrong option",
			selected: []int{0, 0, 1},
			correct:  []int{0},
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCorrectAllOrNothing(tt.selected, tt.correct); got != tt.want {
				t.Errorf("isCorrectAllOrNothing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreQuiz(t *testing.T) {
	twoCorrect := Quiz{Questions: []Question{{
		ID: "q1",
		Answers: []Answer{
			{Text: "a", Correct: true},
			{Text: "b", Correct: true},
			{Text: "c"},
		},
	}}}
	noneCorrect := Quiz{Questions: []Question{{
		ID:      "q1",
		Answers: []Answer{{Text: "a"}, {Text: "b"}},
	}}}

	tests := []struct {
		name string
		quiz Quiz
		sel  Selections
		want Score
	}{
		{
			name: "both correct answers selected",
			quiz: twoCorrect,
			sel:  Selections{"q1": {0, 1}},
			want: Score{Correct: 1, Total: 1, Percentage: 100},
		},
		{
			name: "repeated selection counts once",
			quiz: twoCorrect,
			sel:  Selections{"q1": {1, 0, 1}},
			want: Score{Correct: 1, Total: 1, Percentage: 100},
		},
		{
			name: "one of two correct answers selected",
			quiz: twoCorrect,
			sel:  Selections{"q1": {0}},
			want: Score{Correct: 0, Total: 1, Percentage: 0},
		},
		{
			name: "no correct answer marked and nothing selected",
			quiz: noneCorrect,
			sel:  Selections{},
			want: Score{Correct: 0, Total: 1, Percentage: 0},
		},
		{
			name: "empty quiz",
			quiz: Quiz{},
			sel:  nil,
			want: Score{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreQuiz(tt.quiz, tt.sel); got != tt.want {
				t.Errorf("ScoreQuiz() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestScoreQuizRoundsPercentage(t *testing.T) {
	q := Quiz{}
	for _, id := range []string{"q1", "q2", "q3"} {
		q.Questions = append(q.Questions, Question{ID: id, Answers: []Answer{{Correct: true}, {}}})
	}
	got := ScoreQuiz(q, Selections{"q1": {0}, "q2": {0}, "q3": {1}})
	if got.Correct != 2 || got.Total != 3 || got.Percentage != 67 {
		t.Fatalf("ScoreQuiz() = %+v, want 2/3 at 67%%", got)
	}
}
