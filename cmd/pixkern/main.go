// Command pixkern applies image operators to an image file.
//
// Usage:
//
//	pixkern [-v] [-pipeline steps.yaml] [-op name]... input output
//
// Operators given with -op run after those of the pipeline file, in order.
// The output format follows the output file extension (.png, .bmp, .tif).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/soypat/pixkern/filters"
	"github.com/soypat/pixkern/internal/codec"
	"github.com/soypat/pixkern/internal/pipeline"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "pixkern: %v\n", err)
		os.Exit(1)
	}
}

// opList collects repeated -op flags.
type opList []filters.Operator

func (l *opList) String() string {
	names := make([]string, len(*l))
	for i, op := range *l {
		names[i] = op.String()
	}
	return strings.Join(names, ",")
}

func (l *opList) Set(s string) error {
	for _, name := range strings.Split(s, ",") {
		op, err := filters.ParseOperator(name)
		if err != nil {
			return err
		}
		*l = append(*l, op)
	}
	return nil
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("pixkern", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		ops      opList
		pipePath string
		verbose  bool
	)
	fs.Var(&ops, "op", "operator to apply, repeatable or comma separated: "+operatorNames())
	fs.StringVar(&pipePath, "pipeline", "", "YAML pipeline file")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("expected input and output paths")
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var chain []filters.Operator
	if pipePath != "" {
		p, err := pipeline.Load(pipePath)
		if err != nil {
			return err
		}
		chain = p.Operators()
	}
	chain = append(chain, ops...)
	if len(chain) == 0 {
		return errors.New("no operators given, use -op or -pipeline")
	}

	inPath, outPath := fs.Arg(0), fs.Arg(1)
	if _, err := codec.FormatFromPath(outPath); err != nil {
		return err
	}
	src, format, err := codec.DecodeFile(inPath)
	if err != nil {
		return err
	}
	log.Info("decoded", "path", inPath, "format", format, "width", src.Width(), "height", src.Height())

	p := pipeline.New(chain...)
	p.OnStep = func(step int, op filters.Operator, elapsed time.Duration) {
		log.Debug("applied", "step", step, "op", op, "elapsed", elapsed)
	}
	start := time.Now()
	out, err := p.Run(src)
	if err != nil {
		return err
	}
	if err := codec.EncodeFile(outPath, out); err != nil {
		return err
	}
	log.Info("wrote", "path", outPath, "ops", len(chain), "elapsed", time.Since(start))
	return nil
}

func operatorNames() string {
	ops := filters.Operators()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.String()
	}
	return strings.Join(names, ", ")
}
