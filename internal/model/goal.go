package model

import "time"

// Goal status constants.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusArchived  = "archived"
)

// Check-in ratings are a 1-5 self-assessment scale.
const (
	MinRating = 1
	MaxRating = 5
)

// Goal is a user-defined objective, optionally linked to a topic.
// The goal owns the topic link; topics never store a goal id back
// (look the goal up by topic id instead).
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TopicID     string     `json:"topic_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Status      string     `json:"status"`
}

// Check is a dated self-assessment record against a goal.
// PointsEarned is set once at creation from the ledger's award policy
// and is never recomputed.
type Check struct {
	ID           string    `json:"id"`
	GoalID       string    `json:"goal_id"`
	CheckDate    time.Time `json:"check_date"`
	Content      string    `json:"content"`
	Rating       int       `json:"rating"`
	PointsEarned int       `json:"points_earned"`
}

// GoalUpdate is a partial-field update for a goal. Nil fields are
// left untouched.
type GoalUpdate struct {
	Title       *string
	Description *string
	TopicID     *string
	TargetDate  *time.Time
	Status      *string
}
