package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"
)

type exercisesCmd struct {
	out io.Writer
}

func (*exercisesCmd) Name() string     { return "exercises" }
func (*exercisesCmd) Synopsis() string { return "Lists all exercises with their questions." }
func (*exercisesCmd) Usage() string {
	return `exercises:
  Lists every exercise sorted by id, with questions in order.
`
}

func (*exercisesCmd) SetFlags(*flag.FlagSet) {}

func (c *exercisesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if len(exercises) == 0 {
		fmt.Fprintln(c.out, "no exercises")
		return subcommands.ExitSuccess
	}

	for _, exercise := range exercises {
		fmt.Fprintf(c.out, "%d: %s (due %s)\n", exercise.ID, exercise.Name, exercise.DueDate.Format("2006-01-02 15:04"))
		for idx, question := range exercise.Questions {
			fmt.Fprintf(c.out, "  %d. %s [%d pts] %s\n", idx+1, question.Name, question.Points, question.Description)
		}
	}
	return subcommands.ExitSuccess
}
