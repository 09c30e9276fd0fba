package main

import "math"

// Selections maps a question id to the answer indices picked for it.
type Selections map[string][]int

type Score struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ScoreQuiz counts a question as correct only when the selected indices are
// exactly its non-empty set of correct answers.
func ScoreQuiz(q Quiz, sel Selections) Score {
	s := Score{Total: len(q.Questions)}
	for _, qu := range q.Questions {
		var correct []int
		for i, a := range qu.Answers {
			if a.Correct {
				correct = append(correct, i)
			}
		}
		if len(correct) > 0 && isCorrectAllOrNothing(sel[qu.ID], correct) {
			s.Correct++
		}
	}
	if s.Total > 0 {
		s.Percentage = int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
	}
	return s
}

func isCorrectAllOrNothing(selected, correct []int) bool {
	// a repeated pick counts once
	selSet := make(map[int]struct{}, len(selected))
	for _, k := range selected {
		selSet[k] = struct{}{}
	}
	if len(selSet) != len(correct) {
		return false
	}
	for _, k := range correct {
		if _, ok := selSet[k]; !ok {
			return false
		}
	}
	return true
}
