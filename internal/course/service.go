package course

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Gradebook is the application-facing surface over the repositories. It does
// the cross-repository checks the store cannot do on its own (grade vector
// length vs. question count) and logs the operations.
type Gradebook struct {
	users       UserRepository
	exercises   ExerciseRepository
	submissions SubmissionRepository
	log         zerolog.Logger
}

func NewGradebook(users UserRepository, exercises ExerciseRepository, submissions SubmissionRepository, log zerolog.Logger) *Gradebook {
	return &Gradebook{
		users:       users,
		exercises:   exercises,
		submissions: submissions,
		log:         log,
	}
}

// RegisterUser creates the user, or refreshes name and password for an
// existing username. Repeated calls with the same data are idempotent.
func (g *Gradebook) RegisterUser(ctx context.Context, user User) (int64, error) {
	if strings.TrimSpace(user.Username) == "" {
		return 0, ErrInvalidUsername
	}

	id, err := g.users.UpsertUser(ctx, user)
	if err != nil {
		return 0, err
	}

	g.log.Info().Str("username", user.Username).Int64("user_id", id).Msg("user registered")
	return id, nil
}

func (g *Gradebook) Login(ctx context.Context, username, password string) (bool, error) {
	return g.users.VerifyCredentials(ctx, username, password)
}

// PublishExercise adds the exercise. ErrExerciseExists is an expected outcome
// for callers re-publishing the same id, not a failure of the system.
func (g *Gradebook) PublishExercise(ctx context.Context, exercise Exercise) (int64, error) {
	id, err := g.exercises.AddExercise(ctx, exercise)
	if err != nil {
		return 0, err
	}

	g.log.Info().Int64("exercise_id", id).Str("name", exercise.Name).Msg("exercise published")
	return id, nil
}

func (g *Gradebook) ListExercises(ctx context.Context) ([]Exercise, error) {
	return g.exercises.LoadExercises(ctx)
}

// RecordSubmission validates the submission against its exercise and stores
// it. The grade vector must have exactly one entry per question. A zero
// SubmittedAt is defaulted to the current time.
func (g *Gradebook) RecordSubmission(ctx context.Context, submission Submission) (int64, error) {
	if strings.TrimSpace(submission.Username) == "" {
		return 0, ErrInvalidUsername
	}

	exercise, err := g.findExercise(ctx, submission.ExerciseID)
	if err != nil {
		return 0, err
	}
	if len(submission.Grades) != len(exercise.Questions) {
		return 0, ErrGradeCountMismatch
	}

	if submission.SubmittedAt.IsZero() {
		submission.SubmittedAt = time.Now().UTC()
	}

	id, err := g.submissions.StoreSubmission(ctx, submission)
	if err != nil {
		return 0, err
	}

	g.log.Info().
		Int64("submission_id", id).
		Str("username", submission.Username).
		Int64("exercise_id", submission.ExerciseID).
		Msg("submission recorded")
	return id, nil
}

func (g *Gradebook) LatestSubmission(ctx context.Context, user User, exercise Exercise) (*Submission, error) {
	return g.submissions.LastSubmission(ctx, user, exercise)
}

func (g *Gradebook) BestSubmission(ctx context.Context, user User, exercise Exercise) (*Submission, error) {
	return g.submissions.BestSubmission(ctx, user, exercise)
}

func (g *Gradebook) findExercise(ctx context.Context, exerciseID int64) (Exercise, error) {
	exercises, err := g.exercises.LoadExercises(ctx)
	if err != nil {
		return Exercise{}, err
	}
	for _, exercise := range exercises {
		if exercise.ID == exerciseID {
			return exercise, nil
		}
	}
	return Exercise{}, ErrExerciseNotFound
}
