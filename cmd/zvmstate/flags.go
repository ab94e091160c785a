package main

import (
	"flag"
	"fmt"
	"os"
)

// config is the resolved CLI configuration.
type config struct {
	modulePath  string
	fixturePath string
}

// parseFlags parses CLI arguments into a config. Returns the config,
// whether the caller should exit immediately, and the exit code to use
// when it should.
func parseFlags(args []string) (config, bool, int) {
	var cfg config

	fs := flag.NewFlagSet("zvmstate", flag.ContinueOnError)
	fs.StringVar(&cfg.fixturePath, "fixture", "", "path to the input JSON fixture")
	showVersion := fs.Bool("version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: zvmstate [flags] MODULE\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, true, 0
		}
		return cfg, true, 2
	}

	if *showVersion {
		fmt.Printf("zvmstate %s (commit %s)\n", version, commit)
		return cfg, true, 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, true, 2
	}
	cfg.modulePath = fs.Arg(0)

	if cfg.fixturePath == "" {
		fmt.Fprintln(os.Stderr, "zvmstate: --fixture is required")
		return cfg, true, 2
	}

	return cfg, false, 0
}
