package model

import "time"

// AnswerSelection is one recorded answer as seen by the scoring engine.
type AnswerSelection struct {
	QuestionID    string
	SelectedIndex int
}

// AnswerKey is the grading data of one question.
type AnswerKey struct {
	CorrectIndex int
	Points       int
}

// AttemptAggregate is the per-quiz rollup of attempt rows.
type AttemptAggregate struct {
	QuizID      string
	Submissions int
	ScoredCount int
	ScoreSum    int
}

// QuestionAggregate counts answers on one question within completed attempts.
type QuestionAggregate struct {
	QuestionID   string
	CorrectCount int
	TotalCount   int
}

type AttemptSummary struct {
	ID          string     `json:"id"`
	StudentName string     `json:"student_name"`
	Score       int        `json:"score"`
	TotalPoints int        `json:"total_points"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

type QuestionStat struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	CorrectCount  int    `json:"correct_count"`
	TotalAttempts int    `json:"total_attempts"`
	Accuracy      int    `json:"accuracy"`
}

type RangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type TimeStats struct {
	AverageTime      int          `json:"average_time"`
	MedianTime       int          `json:"median_time"`
	TimeDistribution []RangeCount `json:"timeDistribution"`
}

// swagger:model QuizAnalytics
type QuizAnalytics struct {
	Quiz              QuizWithStats    `json:"quiz"`
	Attempts          []AttemptSummary `json:"attempts"`
	QuestionStats     []QuestionStat   `json:"questionStats"`
	ScoreDistribution []RangeCount     `json:"scoreDistribution"`
	TimeStats         TimeStats        `json:"timeStats"`
}
