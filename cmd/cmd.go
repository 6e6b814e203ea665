package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rubiojr/bindconv/ast"
	"github.com/rubiojr/bindconv/conversion"
	"github.com/rubiojr/bindconv/typedb"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Execute runs the bindconv CLI with the given version string.
func Execute(version string) {
	cmd := &cli.Command{
		Name:                   "bindconv",
		Usage:                  "Convert raw native bindings into safe bridge declarations",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Type database configuration (YAML)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log conversion decisions to stderr",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert declaration trees and print the bridge source",
				ArgsUsage: "<tree.yaml> [tree.yaml...]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Units converted in parallel",
						Value:   1,
					},
				},
				Action: convertAction,
			},
			{
				Name:      "needs",
				Usage:     "Print the native glue a declaration tree requires, as YAML",
				ArgsUsage: "<tree.yaml>",
				Action:    needsAction,
			},
			{
				Name:      "classify",
				Usage:     "Print the value-safety class of every type in a declaration tree",
				ArgsUsage: "<tree.yaml>",
				Action:    classifyAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		colorErr, colorReset := "\033[31m", "\033[0m"
		if cmd.Bool("no-color") || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stderr.Fd())) {
			colorErr, colorReset = "", ""
		}
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", colorErr, colorReset, err)
		os.Exit(1)
	}
}

// newLogger logs to stderr, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadDatabase reads the configuration, or returns an empty database when
// none was given.
func loadDatabase(path string) (*typedb.TypeDatabase, error) {
	if path == "" {
		return typedb.New(typedb.Config{}), nil
	}
	return typedb.Load(path)
}

func setup(cmd *cli.Command) (*conversion.BridgeConverter, error) {
	db, err := loadDatabase(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	logger := newLogger(os.Stderr, cmd.Bool("verbose"))
	return conversion.NewBridgeConverter(db, conversion.WithLogger(logger)), nil
}

func convertAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: bindconv convert [-j jobs] <tree.yaml> [tree.yaml...]")
	}
	bc, err := setup(cmd)
	if err != nil {
		return err
	}
	return convertUnits(bc, cmd.Args().Slice(), int(cmd.Int("jobs")), os.Stdout)
}

func needsAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: bindconv needs <tree.yaml>")
	}
	bc, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := convertFile(bc, cmd.Args().First())
	if err != nil {
		return err
	}
	return writeNeeds(os.Stdout, res.Needs)
}

func classifyAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: bindconv classify <tree.yaml>")
	}
	bc, err := setup(cmd)
	if err != nil {
		return err
	}
	path := cmd.Args().First()
	mod, err := ast.ParseFile(path)
	if err != nil {
		return err
	}
	classes, err := bc.Classify(mod)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	writeClasses(os.Stdout, classes)
	return nil
}

// writeNeeds renders glue requests as a YAML document.
func writeNeeds(w io.Writer, needs []conversion.AdditionalNeed) error {
	if len(needs) == 0 {
		needs = []conversion.AdditionalNeed{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"needs": needs}); err != nil {
		return err
	}
	return enc.Close()
}

func writeClasses(w io.Writer, classes []conversion.TypeClass) {
	for _, c := range classes {
		if c.Reason == "" {
			fmt.Fprintf(w, "%-8s %s\n", c.Kind, c.Name)
			continue
		}
		fmt.Fprintf(w, "%-8s %s (%s)\n", c.Kind, c.Name, c.Reason)
	}
}
