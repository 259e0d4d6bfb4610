package main

import (
	"fmt"
	"io"
	"os"

	"fortio.org/log"
	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"go.ylang.dev/internal/config"
	"go.ylang.dev/pkg"
)

const (
	exitUsage   = 64
	exitDataErr = 65
	exitIOErr   = 74
)

const usage = `Usage: y [-c config] [-v] [-n | -p | -S] [script]

  -c file  read settings from file instead of ~/.ylang.yml
  -v       verbose logging
  -n       check syntax only, reporting every parse error
  -p       print the parsed statements instead of running them
  -S       print LLVM IR instead of running
  -h       show this help
`

type options struct {
	configPath string
	verbose    bool
	mode       mode

	// fileMode replaces mode for scripts when set.
	fileMode fileMode
}

// mode handles one submission of source text.
type mode func(s *ylang.Session, source string, out io.Writer) error

type fileMode func(s *ylang.Session, path string, out io.Writer) error

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, rest, err := parseOptions(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	if opts == nil {
		fmt.Fprint(stdout, usage)
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		log.Errf("%v", err)
		return exitUsage
	}

	log.SetLogLevel(cfg.Level())
	if opts.verbose {
		log.SetLogLevel(log.Verbose)
	}
	color.NoColor = color.NoColor || !cfg.Color

	diag := &colorWriter{c: color.New(color.FgRed), w: stderr}
	session := ylang.NewSession(stdout, diag)

	switch len(rest) {
	case 0:
		if err := newREPL(session, opts.mode, cfg).loop(stdin, stdout); err != nil {
			log.Errf("interactive session: %v", err)
			return exitIOErr
		}

		return 0
	case 1:
		return runFile(session, opts, rest[0], stdout)
	default:
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
}

// parseOptions returns nil options when help was requested.
func parseOptions(args []string) (*options, []string, error) {
	found, optind, err := getopt.Getopts(args, "c:vnpSh")
	if err != nil {
		return nil, nil, err
	}

	opts := &options{mode: execute}
	for _, opt := range found {
		switch opt.Option {
		case 'c':
			opts.configPath = opt.Value
		case 'v':
			opts.verbose = true
		case 'n':
			opts.mode, opts.fileMode = check, nil
		case 'p':
			opts.mode, opts.fileMode = printTree, nil
		case 'S':
			opts.mode = emitIR
			opts.fileMode = emitFileIR
		case 'h':
			return nil, nil, nil
		}
	}

	return opts, args[optind:], nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path, true)
	}

	if path = config.DefaultPath(); path == "" {
		return config.Default(), nil
	}

	return config.Load(path, false)
}

// runFile maps a failed script to exitDataErr and any other failure to
// exitIOErr.
func runFile(session *ylang.Session, opts *options, path string, out io.Writer) int {
	var err error
	if opts.fileMode != nil {
		err = opts.fileMode(session, path, out)
	} else {
		var source []byte
		if source, err = os.ReadFile(path); err == nil {
			err = opts.mode(session, string(source), out)
		}
	}

	switch {
	case err == nil:
		return 0
	case session.HadError():
		return exitDataErr
	default:
		log.Errf("running script: %v", err)
		return exitIOErr
	}
}

func execute(s *ylang.Session, source string, _ io.Writer) error {
	return s.Run(source)
}

func check(s *ylang.Session, source string, _ io.Writer) error {
	_, err := s.Check(source)
	return err
}

func printTree(s *ylang.Session, source string, out io.Writer) error {
	stmts, err := s.Parse(source)
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if _, err := fmt.Fprintln(out, ylang.PrintStatement(stmt)); err != nil {
			return err
		}
	}

	return nil
}

func emitIR(s *ylang.Session, source string, out io.Writer) error {
	mod, err := s.Compile(source)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, mod.String())
	return err
}

func emitFileIR(s *ylang.Session, path string, out io.Writer) error {
	mod, err := s.CompileFile(path)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(out, mod.String())
	return err
}

type colorWriter struct {
	c *color.Color
	w io.Writer
}

func (cw *colorWriter) Write(p []byte) (int, error) {
	if _, err := cw.c.Fprint(cw.w, string(p)); err != nil {
		return 0, err
	}

	return len(p), nil
}
