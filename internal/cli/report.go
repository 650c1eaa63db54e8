package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"coursedb/internal/course"
)

type reportCmd struct {
	out io.Writer

	username string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "Shows a user's latest and best submissions." }
func (*reportCmd) Usage() string {
	return `report -user <username>:
  For every exercise, prints the user's latest and best submission with
  per-question grades and the weighted total.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "user", "", "username to report on")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(c.out, "user must be specified")
		return subcommands.ExitUsageError
	}

	gradebook, store, err := openGradebook()
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	exercises, err := gradebook.ListExercises(ctx)
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return subcommands.ExitFailure
	}

	user := course.User{Username: c.username}
	for _, exercise := range exercises {
		fmt.Fprintf(c.out, "%s (exercise %d)\n", exercise.Name, exercise.ID)

		latest, err := gradebook.LatestSubmission(ctx, user, exercise)
		if err != nil {
			fmt.Fprintln(c.out, "error:", err)
			return subcommands.ExitFailure
		}
		best, err := gradebook.BestSubmission(ctx, user, exercise)
		if err != nil {
			fmt.Fprintln(c.out, "error:", err)
			return subcommands.ExitFailure
		}

		c.printSubmission("latest", latest, exercise)
		c.printSubmission("best", best, exercise)
	}
	return subcommands.ExitSuccess
}

func (c *reportCmd) printSubmission(label string, submission *course.Submission, exercise course.Exercise) {
	if submission == nil {
		fmt.Fprintf(c.out, "  %s: no submission\n", label)
		return
	}
	fmt.Fprintf(c.out, "  %s: #%d at %s, grades %v, total %.2f\n",
		label,
		*submission.ID,
		submission.SubmittedAt.Format("2006-01-02 15:04"),
		submission.Grades,
		submission.WeightedTotal(exercise),
	)
}
