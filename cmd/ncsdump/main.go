// ncsdump inspects NCS containers: it decompresses them, decodes their
// tables into JSON, YAML or CBOR, lists the containers embedded in a file,
// and prints categorized parts.
//
// Usage:
//
//	ncsdump [--config path] [--log-level level] <command> [flags] <file>
//
// Commands:
//
//	decompress  write the decompressed payload of a container
//	parse       decode a container, or every container with --all
//	scan        list the containers and manifests embedded in a file
//	parts       print the categorized parts of every container as TSV
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/arloliu/ncs/config"
	"github.com/arloliu/ncs/diag"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every command needs.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger *slog.Logger
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"decompress", "write the decompressed payload of a container", runDecompress},
	{"parse", "decode a container, or every container with --all", runParse},
	{"scan", "list the containers and manifests embedded in a file", runScan},
	{"parts", "print the categorized parts of every container as TSV", runParts},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var configPath, logLevel string

	flagSet := pflag.NewFlagSet("ncsdump", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "configuration file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}

		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return errors.New("no command given")
	}

	logger, err := newLogger(stderr, logLevel)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	a := &app{stdout: stdout, stderr: stderr, cfg: cfg, logger: logger}
	ctx = diag.WithLogger(ctx, logger)

	for _, c := range commands {
		if c.name == rest[0] {
			return c.run(ctx, a, rest[1:])
		}
	}

	return fmt.Errorf("unknown command %q", rest[0])
}

// newLogger creates the diagnostic logger written to stderr.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// loadConfig loads path, or the file named by NCS_CONFIG, or the defaults
// when neither is given.
func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case os.Getenv(config.EnvVar) != "":
		return config.Load()
	default:
		return config.Default(), nil
	}
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	var b strings.Builder
	b.WriteString("Usage: ncsdump [flags] <command> [command flags] <file>\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-11s %s\n", c.name, c.summary)
	}
	b.WriteString("\nFlags:\n")
	b.WriteString(flagSet.FlagUsages())
	b.WriteString("\nRun 'ncsdump <command> --help' for command flags.\n")

	_, _ = io.WriteString(w, b.String())
}

// commandFlags returns a flag set for a command that prints its own usage.
func commandFlags(a *app, name, usage string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: ncsdump %s %s\n\nFlags:\n%s", name, usage, fs.FlagUsages())
	}

	return fs
}

// parseFileArg parses a command's flags and returns its single file
// argument. A nil error with an empty path means help was printed.
func parseFileArg(fs *pflag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return "", nil
		}

		return "", err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("%s: expected one file argument, got %d", fs.Name(), fs.NArg())
	}

	return fs.Arg(0), nil
}
