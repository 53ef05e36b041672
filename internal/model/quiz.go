package model

import "time"

// OptionsPerQuestion is the fixed arity of a question's answer options.
const OptionsPerQuestion = 4

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title         string        `gorm:"size:255;not null" json:"title"`
	Description   string        `gorm:"type:text" json:"description"`
	Subject       SubjectTag    `gorm:"size:50;index" json:"subject"`
	Difficulty    DifficultyTag `gorm:"size:20" json:"difficulty"`
	TotalPoints   int           `gorm:"default:0" json:"total_points"`
	DueDate       *time.Time    `json:"due_date"`
	IsActive      bool          `gorm:"default:true" json:"is_active"`
	Tags          []string      `gorm:"serializer:json;type:text" json:"tags"`
	CreatedBy     string        `gorm:"index;type:varchar(36)" json:"created_by"`
	CreatedByName string        `gorm:"size:100" json:"created_by_name"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID       string   `gorm:"type:varchar(36);not null;uniqueIndex:uq_quiz_question_index,priority:1" json:"quiz_id"`
	IndexInQuiz  int      `gorm:"not null;uniqueIndex:uq_quiz_question_index,priority:2" json:"index_in_quiz"`
	QuestionText string   `gorm:"type:text;not null" json:"question_text"`
	Options      []string `gorm:"serializer:json;type:text" json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Points       int      `gorm:"default:0" json:"points"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	QuizID      string     `gorm:"index;type:varchar(36);not null" json:"quiz_id"`
	StudentID   string     `gorm:"index;type:varchar(36);not null" json:"student_id"`
	StudentName string     `gorm:"size:100" json:"student_name"`
	TotalPoints int        `gorm:"default:0" json:"total_points"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `gorm:"index" json:"submitted_at"`
	Score       *int       `json:"score"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// IsSubmitted reports whether the attempt reached its terminal state.
func (a *QuizAttempt) IsSubmitted() bool {
	return a.SubmittedAt != nil
}

// QuizAttemptAnswer holds one selected option. uq_attempt_question keeps at most one
// row per (attempt, question).
type QuizAttemptAnswer struct {
	UUIDBase
	AttemptID     string `gorm:"type:varchar(36);not null;uniqueIndex:uq_attempt_question,priority:1" json:"attempt_id"`
	QuestionID    string `gorm:"type:varchar(36);not null;uniqueIndex:uq_attempt_question,priority:2;index" json:"question_id"`
	SelectedIndex int    `json:"selected_index"`
}

func (QuizAttemptAnswer) TableName() string {
	return "quiz_attempt_answers"
}

type AttemptState string

const (
	AttemptNotTaken  AttemptState = "not_taken"
	AttemptCompleted AttemptState = "completed"
)

// AttemptStatus is derived per (quiz, student) and never persisted.
type AttemptStatus struct {
	QuizID string       `json:"quiz_id"`
	Status AttemptState `json:"status"`
	Score  *int         `json:"score,omitempty"`
}

// swagger:model QuizWithStats
type QuizWithStats struct {
	Quiz
	QuestionsCount int  `json:"questions_count"`
	Submissions    int  `json:"submissions"`
	AverageScore   *int `json:"average_score"`
}

// StudentQuestion is a question as shown to a student, without the answer key.
type StudentQuestion struct {
	ID           string   `json:"id"`
	QuizID       string   `json:"quiz_id"`
	IndexInQuiz  int      `json:"index_in_quiz"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Points       int      `json:"points"`
}

func (q QuizQuestion) ForStudent() StudentQuestion {
	return StudentQuestion{
		ID:           q.ID,
		QuizID:       q.QuizID,
		IndexInQuiz:  q.IndexInQuiz,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Points:       q.Points,
	}
}
