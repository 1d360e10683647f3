package domain

import "time"

// DeletedQuizTitle is shown for attempts whose quiz no longer exists.
const DeletedQuizTitle = "Deleted Quiz"

// Attempt is one scored quiz submission. Attempts are never changed once
// written.
type Attempt struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	QuizID      string    `json:"quiz_id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	CompletedAt time.Time `json:"completed_at"`
}

// AttemptView is an Attempt joined with its quiz title and owner email
// for the administrator results page. Both joined fields are nil when the
// referenced row is gone.
type AttemptView struct {
	Attempt
	QuizTitle    *string `json:"quiz_title"`
	DisplayTitle string  `json:"display_title"`
	UserEmail    *string `json:"user_email"`
}

// Resolve fills DisplayTitle from QuizTitle.
func (v *AttemptView) Resolve() {
	if v.QuizTitle == nil {
		v.DisplayTitle = DeletedQuizTitle
		return
	}
	v.DisplayTitle = *v.QuizTitle
}

// SubmitRequest carries either a client-computed score and total or the
// raw answer indices. Answers take precedence when present.
type SubmitRequest struct {
	Score   *int  `json:"score"`
	Total   *int  `json:"total"`
	Answers []int `json:"answers"`
}
