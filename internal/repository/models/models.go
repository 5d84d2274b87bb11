package models

import (
	"database/sql"
	"time"
)

// Column names are upper case because Oracle reports unquoted identifiers that way.

type Quiz struct {
	ID          string         `db:"ID"`
	Title       string         `db:"TITLE"`
	Description sql.NullString `db:"DESCRIPTION"`
	Grade       string         `db:"GRADE"`
	Difficulty  string         `db:"DIFFICULTY"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
}

type QuizQuestion struct {
	ID            string         `db:"ID"`
	QuizID        string         `db:"QUIZ_ID"`
	Position      int            `db:"POSITION"`
	QuestionText  string         `db:"QUESTION_TEXT"`
	Options       StringSlice    `db:"OPTIONS"`
	CorrectAnswer int            `db:"CORRECT_ANSWER"`
	Explanation   sql.NullString `db:"EXPLANATION"`
}

type QuizAssignment struct {
	QuizID     string    `db:"QUIZ_ID"`
	StudentID  string    `db:"STUDENT_ID"`
	AssignedAt time.Time `db:"ASSIGNED_AT"`
}

type Student struct {
	ID        string         `db:"ID"`
	Name      string         `db:"NAME"`
	BirthDate sql.NullString `db:"BIRTH_DATE"`
	School    sql.NullString `db:"SCHOOL"`
	Grade     string         `db:"GRADE"`
	JoinDate  string         `db:"JOIN_DATE"`
	Progress  int            `db:"PROGRESS"`
	CreatedAt time.Time      `db:"CREATED_AT"`
	UpdatedAt time.Time      `db:"UPDATED_AT"`
}

type QuizResult struct {
	ID         string    `db:"ID"`
	StudentID  string    `db:"STUDENT_ID"`
	QuizID     string    `db:"QUIZ_ID"`
	QuizTitle  string    `db:"QUIZ_TITLE"`
	Score      int       `db:"SCORE"`
	ResultDate string    `db:"RESULT_DATE"`
	CreatedAt  time.Time `db:"CREATED_AT"`
}

type CurriculumModule struct {
	ID          string         `db:"ID"`
	Title       string         `db:"TITLE"`
	Description sql.NullString `db:"DESCRIPTION"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
	UpdatedAt   time.Time      `db:"UPDATED_AT"`
}

type Lesson struct {
	ID         string         `db:"ID"`
	ModuleID   string         `db:"MODULE_ID"`
	Position   int            `db:"POSITION"`
	Title      string         `db:"TITLE"`
	Content    string         `db:"CONTENT"`
	Objectives StringSlice    `db:"OBJECTIVES"`
	Activities StringSlice    `db:"ACTIVITIES"`
	Duration   sql.NullString `db:"DURATION"`
	CreatedAt  time.Time      `db:"CREATED_AT"`
}
