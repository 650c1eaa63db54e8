package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/google/subcommands"

	"coursedb/internal/course"
)

type seedCmd struct {
	out io.Writer
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "Seeds the database with demo data." }
func (*seedCmd) Usage() string {
	return `seed:
  Creates demo users, one exercise and a few submissions. A no-op when the
  exercise already exists.
`
}

func (*seedCmd) SetFlags(*flag.FlagSet) {}

func (c *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	gradebook, store, err := openGradebook()
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	for _, user := range []course.User{
		{Username: "alice", FirstName: "Alice", LastName: "Avgol", Password: "secret"},
		{Username: "bob", FirstName: "Bob", LastName: "Barkan", Password: "hunter2"},
	} {
		if _, err := gradebook.RegisterUser(ctx, user); err != nil {
			fmt.Fprintln(c.out, "error:", err)
			return subcommands.ExitFailure
		}
	}

	exercise := course.Exercise{
		ID:      1,
		Name:    "Intro to SQL",
		DueDate: time.Now().UTC().Add(14 * 24 * time.Hour),
		Questions: []course.Question{
			{Name: "Q1", Description: "Write a SELECT", Points: 5},
			{Name: "Q2", Description: "Write a JOIN", Points: 10},
			{Name: "Q3", Description: "Write a GROUP BY", Points: 5},
		},
	}
	if _, err := gradebook.PublishExercise(ctx, exercise); err != nil {
		if errors.Is(err, course.ErrExerciseExists) {
			fmt.Fprintln(c.out, "already seeded")
			return subcommands.ExitSuccess
		}
		fmt.Fprintln(c.out, "error:", err)
		return subcommands.ExitFailure
	}

	base := time.Now().UTC().Add(-2 * time.Hour)
	for idx, grades := range [][]float64{
		{0.5, 0.6, 1.0},
		{0.8, 1.0, 0.5},
	} {
		if _, err := gradebook.RecordSubmission(ctx, course.Submission{
			Username:    "alice",
			ExerciseID:  exercise.ID,
			SubmittedAt: base.Add(time.Duration(idx) * time.Hour),
			Grades:      grades,
		}); err != nil {
			fmt.Fprintln(c.out, "error:", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Fprintln(c.out, "seeded")
	return subcommands.ExitSuccess
}
