package main

import (
	"context"
	"os"

	"coursedb/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Stdout))
}
