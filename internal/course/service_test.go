package course

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeUserRepo struct {
	ids         map[string]int64
	upsertCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{ids: make(map[string]int64)}
}

func (f *fakeUserRepo) UpsertUser(_ context.Context, user User) (int64, error) {
	f.upsertCalls++
	id, ok := f.ids[user.Username]
	if !ok {
		id = int64(len(f.ids) + 1)
		f.ids[user.Username] = id
	}
	return id, nil
}

func (f *fakeUserRepo) LookupUserID(_ context.Context, username string) (int64, error) {
	id, ok := f.ids[username]
	if !ok {
		return 0, ErrUserNotFound
	}
	return id, nil
}

func (f *fakeUserRepo) VerifyCredentials(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type fakeExerciseRepo struct {
	exercises []Exercise
	addErr    error
	addCalls  int
	loadCalls int
}

func (f *fakeExerciseRepo) AddExercise(_ context.Context, exercise Exercise) (int64, error) {
	f.addCalls++
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.exercises = append(f.exercises, exercise)
	return exercise.ID, nil
}

func (f *fakeExerciseRepo) LoadExercises(_ context.Context) ([]Exercise, error) {
	f.loadCalls++
	return f.exercises, nil
}

type fakeSubmissionRepo struct {
	storeCalls int
	lastStored Submission
	storeErr   error
}

func (f *fakeSubmissionRepo) StoreSubmission(_ context.Context, submission Submission) (int64, error) {
	f.storeCalls++
	f.lastStored = submission
	if f.storeErr != nil {
		return 0, f.storeErr
	}
	return 99, nil
}

func (f *fakeSubmissionRepo) LastSubmission(_ context.Context, _ User, _ Exercise) (*Submission, error) {
	return nil, nil
}

func (f *fakeSubmissionRepo) BestSubmission(_ context.Context, _ User, _ Exercise) (*Submission, error) {
	return nil, nil
}

func newTestGradebook(users *fakeUserRepo, exercises *fakeExerciseRepo, submissions *fakeSubmissionRepo) *Gradebook {
	return NewGradebook(users, exercises, submissions, zerolog.Nop())
}

func TestRegisterUserRejectsBlankUsername(t *testing.T) {
	users := newFakeUserRepo()
	gradebook := newTestGradebook(users, &fakeExerciseRepo{}, &fakeSubmissionRepo{})

	for _, username := range []string{"", "   "} {
		if _, err := gradebook.RegisterUser(context.Background(), User{Username: username}); !errors.Is(err, ErrInvalidUsername) {
			t.Fatalf("username %q: expected ErrInvalidUsername, got %v", username, err)
		}
	}
	if users.upsertCalls != 0 {
		t.Fatalf("expected no upsert calls, got %d", users.upsertCalls)
	}
}

func TestPublishExercisePropagatesExists(t *testing.T) {
	exercises := &fakeExerciseRepo{addErr: ErrExerciseExists}
	gradebook := newTestGradebook(newFakeUserRepo(), exercises, &fakeSubmissionRepo{})

	_, err := gradebook.PublishExercise(context.Background(), sampleExercise(1))
	if !errors.Is(err, ErrExerciseExists) {
		t.Fatalf("expected ErrExerciseExists, got %v", err)
	}
}

func TestRecordSubmissionGradeCountMismatch(t *testing.T) {
	exercises := &fakeExerciseRepo{exercises: []Exercise{sampleExercise(1)}}
	submissions := &fakeSubmissionRepo{}
	gradebook := newTestGradebook(newFakeUserRepo(), exercises, submissions)

	_, err := gradebook.RecordSubmission(context.Background(), Submission{
		Username:   "alice",
		ExerciseID: 1,
		Grades:     []float64{1, 1}, // exercise has 3 questions
	})
	if !errors.Is(err, ErrGradeCountMismatch) {
		t.Fatalf("expected ErrGradeCountMismatch, got %v", err)
	}
	if submissions.storeCalls != 0 {
		t.Fatalf("expected no store calls on mismatch, got %d", submissions.storeCalls)
	}
}

func TestRecordSubmissionUnknownExercise(t *testing.T) {
	submissions := &fakeSubmissionRepo{}
	gradebook := newTestGradebook(newFakeUserRepo(), &fakeExerciseRepo{}, submissions)

	_, err := gradebook.RecordSubmission(context.Background(), Submission{
		Username:   "alice",
		ExerciseID: 12,
		Grades:     []float64{1},
	})
	if !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}
	if submissions.storeCalls != 0 {
		t.Fatalf("expected no store calls, got %d", submissions.storeCalls)
	}
}

func TestRecordSubmissionDefaultsSubmittedAt(t *testing.T) {
	exercises := &fakeExerciseRepo{exercises: []Exercise{sampleExercise(1)}}
	submissions := &fakeSubmissionRepo{}
	gradebook := newTestGradebook(newFakeUserRepo(), exercises, submissions)

	id, err := gradebook.RecordSubmission(context.Background(), Submission{
		Username:   "alice",
		ExerciseID: 1,
		Grades:     []float64{0.8, 1.0, 0.5},
	})
	if err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected repository id 99, got %d", id)
	}
	if submissions.lastStored.SubmittedAt.IsZero() {
		t.Fatalf("expected SubmittedAt to be defaulted, got zero time")
	}
}

func TestRecordSubmissionKeepsExplicitTime(t *testing.T) {
	exercises := &fakeExerciseRepo{exercises: []Exercise{sampleExercise(1)}}
	submissions := &fakeSubmissionRepo{}
	gradebook := newTestGradebook(newFakeUserRepo(), exercises, submissions)

	submittedAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	if _, err := gradebook.RecordSubmission(context.Background(), Submission{
		Username:    "alice",
		ExerciseID:  1,
		SubmittedAt: submittedAt,
		Grades:      []float64{0, 0, 0},
	}); err != nil {
		t.Fatalf("RecordSubmission failed: %v", err)
	}
	if !submissions.lastStored.SubmittedAt.Equal(submittedAt) {
		t.Fatalf("expected SubmittedAt %v to pass through, got %v", submittedAt, submissions.lastStored.SubmittedAt)
	}
}

func TestWeightedTotal(t *testing.T) {
	exercise := sampleExercise(1) // points [5, 10, 5]

	cases := []struct {
		name   string
		grades []float64
		want   float64
	}{
		{"full marks", []float64{1, 1, 1}, 20},
		{"weighted mix", []float64{0.8, 0.5, 0}, 9},
		{"zero grade contributes nothing", []float64{0, 1, 0}, 10},
		{"empty vector", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			submission := Submission{Grades: tc.grades}
			if got := submission.WeightedTotal(exercise); got != tc.want {
				t.Fatalf("WeightedTotal = %v, want %v", got, tc.want)
			}
		})
	}
}
