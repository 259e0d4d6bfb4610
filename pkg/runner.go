package ylang

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/log"
	"github.com/llir/llvm/ir"
	"github.com/tevino/abool/v2"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeLexerError
	OutcomeParserError
	OutcomeRuntimeError
	OutcomeCompileError
	OutcomeOtherError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeLexerError:
		return "lexer error"
	case OutcomeParserError:
		return "parse error"
	case OutcomeRuntimeError:
		return "runtime error"
	case OutcomeCompileError:
		return "compile error"
	default:
		return "error"
	}
}

// Classify maps the error returned by a run to the pipeline stage that
// produced it.
func Classify(err error) Outcome {
	var lexErr *LexerError
	var parseErr *ParserError
	var parseErrs *ParseErrors
	var runtimeErr *RuntimeError
	var compileErr *CompileError

	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &lexErr):
		return OutcomeLexerError
	case errors.As(err, &parseErr), errors.As(err, &parseErrs):
		return OutcomeParserError
	case errors.As(err, &runtimeErr):
		return OutcomeRuntimeError
	case errors.As(err, &compileErr):
		return OutcomeCompileError
	default:
		return OutcomeOtherError
	}
}

// Session runs independent submissions of source text. A failed run is
// reported to the diagnostic sink and flagged, but does not affect later
// runs. Runs on one Session must not overlap.
type Session struct {
	out      io.Writer
	diag     io.Writer
	hadError *abool.AtomicBool
}

func NewSession(out, diag io.Writer) *Session {
	return &Session{
		out:      out,
		diag:     diag,
		hadError: abool.NewBool(false),
	}
}

// Run executes source against a fresh global environment, printing to the
// session output.
func Run(source string, out, diag io.Writer) error {
	return NewSession(out, diag).Run(source)
}

func (s *Session) Run(source string) error {
	stmts, err := s.parse(source)
	if err != nil {
		return err
	}

	if err := NewInterpreter(s.out).Interpret(stmts, NewEnvironment()); err != nil {
		return s.report(err)
	}

	return nil
}

// Check lexes and parses source, reporting every parse error instead of
// only the first.
func (s *Session) Check(source string) ([]Stmt, error) {
	tokens, err := ScanTokens(source)
	if err != nil {
		return nil, s.report(err)
	}

	stmts, err := NewParser(tokens).ParseAll()
	if err != nil {
		var errs *ParseErrors
		if errors.As(err, &errs) {
			for _, e := range errs.Errors {
				s.reportOne(OutcomeParserError, e)
			}
			s.hadError.Set()

			return stmts, err
		}

		return stmts, s.report(err)
	}

	return stmts, nil
}

// Compile lowers source to an LLVM IR module instead of executing it.
func (s *Session) Compile(source string) (*ir.Module, error) {
	mod, err := NewCompiler().CompileString(source)
	if err != nil {
		return nil, s.report(err)
	}

	return mod, nil
}

// CompileFile lowers the script at path. Failing to open the script is
// returned without being reported as a script error.
func (s *Session) CompileFile(path string) (*ir.Module, error) {
	mod, err := NewCompiler().Compile(path)
	if err != nil {
		if Classify(err) == OutcomeOtherError {
			return nil, err
		}

		return nil, s.report(err)
	}

	return mod, nil
}

// Parse lexes and parses source without executing it.
func (s *Session) Parse(source string) ([]Stmt, error) {
	return s.parse(source)
}

func (s *Session) HadError() bool {
	return s.hadError.IsSet()
}

func (s *Session) Reset() {
	s.hadError.UnSet()
}

func (s *Session) parse(source string) ([]Stmt, error) {
	tokens, err := ScanTokens(source)
	if err != nil {
		return nil, s.report(err)
	}

	stmts, err := NewParser(tokens).Parse()
	if err != nil {
		return nil, s.report(err)
	}

	return stmts, nil
}

func (s *Session) report(err error) error {
	s.hadError.Set()
	s.reportOne(Classify(err), err)

	return err
}

func (s *Session) reportOne(kind Outcome, err error) {
	log.LogVf("run failed: %s: %v", kind, err)
	if _, werr := fmt.Fprintf(s.diag, "%s: %v\n", kind, err); werr != nil {
		log.Errf("failed to write diagnostic: %v", werr)
	}
}
