package main

import "errors"

var (
	ErrNoQuizOpen        = errors.New("no quiz is open")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrAnswerNotFound    = errors.New("answer not found")
	ErrLastQuestion      = errors.New("quiz must have at least one question")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrInvalidQuestions  = errors.New("every quiz needs at least one question with 1 to 4 answers")
	ErrDuplicateUserName = errors.New("user name already exists")
	ErrLastUserName      = errors.New("you must have at least one user name")
	ErrUnknownUser       = errors.New("please select your name")
	ErrEmptyUserName     = errors.New("user name cannot be empty")
	ErrUserNameNotFound  = errors.New("user name not found")
	ErrBadPassword       = errors.New("incorrect password")
)
