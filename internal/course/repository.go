package course

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrExerciseExists     = errors.New("exercise already exists")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrGradeCountMismatch = errors.New("grade count does not match question count")
)

// User is a course participant. Username is the natural key: upserts match on
// it and it never changes once the row exists.
//
// Password is stored and compared in plaintext. That is the inherited schema
// contract and it is insecure; anything beyond coursework needs salted hashes.
type User struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// Question is one gradable item of an exercise, worth Points.
type Question struct {
	Name        string
	Description string
	Points      int
}

// Exercise is a gradable assignment with an ordered question list. The id is
// caller-supplied and immutable; adding the same id twice is rejected.
type Exercise struct {
	ID        int64
	Name      string
	DueDate   time.Time
	Questions []Question
}

// Submission is one attempt by a user at an exercise. Grades holds one entry
// per question, in question order.
//
// ID is nil until the store assigns one; set it to submit under an explicit id.
type Submission struct {
	ID          *int64
	Username    string
	ExerciseID  int64
	SubmittedAt time.Time
	Grades      []float64
}

// WeightedTotal is the submission's score under the exercise's point weights:
// the sum of grade*points over the graded questions. A question graded zero
// contributes nothing regardless of its weight.
func (s *Submission) WeightedTotal(exercise Exercise) float64 {
	total := 0.0
	for idx, grade := range s.Grades {
		if idx >= len(exercise.Questions) {
			break
		}
		total += grade * float64(exercise.Questions[idx].Points)
	}
	return total
}

type UserRepository interface {
	UpsertUser(ctx context.Context, user User) (int64, error)
	LookupUserID(ctx context.Context, username string) (int64, error)
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)
}

type ExerciseRepository interface {
	AddExercise(ctx context.Context, exercise Exercise) (int64, error)
	LoadExercises(ctx context.Context) ([]Exercise, error)
}

type SubmissionRepository interface {
	StoreSubmission(ctx context.Context, submission Submission) (int64, error)
	LastSubmission(ctx context.Context, user User, exercise Exercise) (*Submission, error)
	BestSubmission(ctx context.Context, user User, exercise Exercise) (*Submission, error)
}
