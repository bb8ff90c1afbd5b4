package main

import (
	"os"

	"github.com/danmuck/forgesync/internal/observability"
)

func main() {
	observability.InitLogger("syncctl")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
