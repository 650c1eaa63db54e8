package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"coursedb/internal/course"
)

type addUserCmd struct {
	out io.Writer

	username  string
	firstName string
	lastName  string
	password  string
}

func (*addUserCmd) Name() string     { return "adduser" }
func (*addUserCmd) Synopsis() string { return "Adds or updates a user." }
func (*addUserCmd) Usage() string {
	return `adduser -username <username> -first <name> -last <name> -password <password>:
  Adds the user, or updates name and password if the username exists.
`
}

func (c *addUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "username (natural key, never changed)")
	f.StringVar(&c.firstName, "first", "", "first name")
	f.StringVar(&c.lastName, "last", "", "last name")
	f.StringVar(&c.password, "password", "", "password (stored in plaintext)")
}

func (c *addUserCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprintln(c.out, "username must be specified")
		return subcommands.ExitUsageError
	}

	gradebook, store, err := openGradebook()
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return subcommands.ExitFailure
	}
	defer store.Close()

	id, err := gradebook.RegisterUser(ctx, course.User{
		Username:  c.username,
		FirstName: c.firstName,
		LastName:  c.lastName,
		Password:  c.password,
	})
	if err != nil {
		fmt.Fprintln(c.out, "error:", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.out, "user %s has id %d\n", c.username, id)
	return subcommands.ExitSuccess
}
