package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	forth "github.com/jcorbin/goforth"
	"github.com/jcorbin/goforth/internal/config"
	"github.com/jcorbin/goforth/internal/fileinput"
	"github.com/jcorbin/goforth/internal/flushio"
	"github.com/jcorbin/goforth/internal/logio"
	"github.com/jcorbin/goforth/internal/panicerr"
	"github.com/jcorbin/goforth/xorcism"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		tee        string
		cfg        config.Config
	)

	cmd := &cobra.Command{
		Use:   "goforth [FILE...]",
		Short: "Evaluate programs in a tiny FORTH",
		Long: `Evaluate programs in a tiny FORTH, one line at a time.

Integers, + - * /, dup drop swap over, and ": name ... ;" definitions are all
there is. The stack is printed after every line that evaluates without error.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if !flags.Changed("trace") {
					cfg.Trace = loaded.Trace
				}
				if !flags.Changed("quiet") {
					cfg.Quiet = loaded.Quiet
				}
				if !flags.Changed("dump") {
					cfg.Dump = loaded.Dump
				}
				if !flags.Changed("key") && cfg.Key == "" {
					cfg.Key = loaded.Key
				}
				cfg.Prelude = loaded.Prelude
			}
			r := runner{
				Config: cfg,
				tee:    tee,
				stdin:  cmd.InOrStdin(),
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			return r.run(args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "load settings and a prelude from a YAML file")
	flags.BoolVar(&cfg.Trace, "trace", false, "enable trace logging")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "do not print the stack after each line")
	flags.BoolVar(&cfg.Dump, "dump", false, "dump the stack and dictionary once all input is read")
	flags.StringVar(&cfg.Key, "key", os.Getenv("GOFORTH_KEY"), "input files are munged with this key; overrides $GOFORTH_KEY, which overrides the config file")
	flags.StringVar(&tee, "tee", "", "copy output to a file")

	cmd.AddCommand(newMungeCmd())
	return cmd
}

type runner struct {
	config.Config
	tee string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	log     logio.Logger
	styles  styles
	out     flushio.WriteFlusher
	in      fileinput.Input
	fs      *forth.Interpreter
	closers []io.Closer
}

func (r *runner) run(args []string) error {
	err := panicerr.Recover("goforth", func() (rerr error) {
		defer func() {
			if cerr := r.close(); rerr == nil {
				rerr = cerr
			}
		}()
		if err := r.setup(args); err != nil {
			return err
		}
		return r.eval()
	})
	if err == nil {
		if code := r.log.ExitCode(); code != 0 {
			err = exitCode(code)
		}
	}
	return err
}

func (r *runner) setup(args []string) error {
	r.styles = newStyles(r.stdout)
	r.log.Decorate = newStyles(r.stderr).decorateLog
	r.log.SetOutput(r.stderr)

	r.out = flushio.NewWriteFlusher(r.stdout)
	if r.tee != "" {
		f, err := os.Create(r.tee)
		if err != nil {
			return errors.Wrap(err, "tee")
		}
		r.closers = append(r.closers, f)
		r.out = flushio.WriteFlushers(r.out, flushio.NewWriteFlusher(f))
	}

	var opts []forth.Option
	if r.Trace {
		opts = append(opts, forth.WithLogf(r.log.Leveledf("TRACE")))
	}
	r.fs = forth.New(opts...)

	for i, line := range r.Prelude {
		if err := r.fs.Eval(line); err != nil {
			return errors.WithMessagef(err, "prelude line %d", i+1)
		}
	}

	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		rd, err := r.open(name)
		if err != nil {
			return err
		}
		r.in.Queue = append(r.in.Queue, rd)
	}
	return nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

func (r *runner) open(name string) (io.Reader, error) {
	var rc io.ReadCloser
	if name == "-" {
		name = "<stdin>"
		rc = io.NopCloser(r.stdin)
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, errors.Wrap(err, "input")
		}
		rc = f
	}
	if r.Key != "" {
		rc = readCloser{xorcism.New([]byte(r.Key)).Reader(rc), rc}
	}
	return fileinput.NamedReader(name, rc), nil
}

// eval evaluates input line by line; a failed line is logged, and does not
// stop evaluation of the lines after it.
func (r *runner) eval() error {
	for {
		line, err := r.in.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			return errors.Wrap(err, "read")
		}

		if err := r.fs.Eval(line); err != nil {
			r.log.Errorf("%v %v", r.in.Last.Location, err)
			continue
		}
		if !r.Quiet && strings.TrimSpace(line) != "" {
			fmt.Fprintln(r.out, r.styles.formatStack(r.fs.Stack()))
			if err := r.out.Flush(); err != nil {
				return errors.Wrap(err, "output")
			}
		}
	}

	if r.Dump {
		lw := logio.Writer{Logf: r.log.Leveledf("DUMP")}
		if err := r.fs.Dump(&lw); err != nil {
			return err
		}
		return lw.Close()
	}
	return nil
}

func (r *runner) close() (err error) {
	if r.out != nil {
		err = r.out.Flush()
	}
	if cerr := r.in.Close(); err == nil {
		err = cerr
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		if cerr := r.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}
