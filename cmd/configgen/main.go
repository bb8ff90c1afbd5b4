package main

import (
	"fmt"
	"io"
	"os"

	"github.com/danmuck/forgesync/internal/config"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("configgen", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	kind := fs.StringP("kind", "k", "config", "template kind: config|fixture")
	output := fs.StringP("output", "o", "", "output path for template")
	validate := fs.Bool("validate", false, "validate an existing file")
	input := fs.StringP("input", "i", "", "path for validation (defaults to the per-kind path)")
	force := fs.Bool("force", false, "overwrite existing file")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}

	if *validate {
		path := *input
		if path == "" {
			var err error
			if path, err = defaultPath(*kind); err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
		}
		if err := validateFile(*kind, path); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stdout, "validated %s at %s\n", *kind, path)
		return 0
	}

	target := *output
	if target == "" {
		var err error
		if target, err = defaultPath(*kind); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s template to %s\n", *kind, target)
	return 0
}

func defaultPath(kind string) (string, error) {
	switch kind {
	case "config":
		return "sync.toml", nil
	case "fixture":
		return "fixture.toml", nil
	default:
		return "", fmt.Errorf("unknown kind: %s", kind)
	}
}

func validateFile(kind, path string) error {
	switch kind {
	case "config":
		_, err := config.Load(path)
		return err
	case "fixture":
		f, err := config.LoadFixture(path)
		if err != nil {
			return err
		}
		_, err = config.Build(f)
		return err
	default:
		return fmt.Errorf("unknown kind: %s", kind)
	}
}
