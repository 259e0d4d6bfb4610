package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/edwingeng/deque"

	"go.ylang.dev/internal/config"
	"go.ylang.dev/pkg"
)

const historyCommand = ".history"

// history keeps the most recent submissions, oldest first.
type history struct {
	entries deque.Deque
	size    int
}

func newHistory(size int) *history {
	return &history{
		entries: deque.NewDeque(),
		size:    size,
	}
}

func (h *history) add(line string) {
	if h.size == 0 {
		return
	}

	h.entries.PushBack(line)
	for h.entries.Len() > h.size {
		h.entries.PopFront()
	}
}

func (h *history) list() []string {
	lines := make([]string, 0, h.entries.Len())
	for i := 0; i < h.entries.Len(); i++ {
		lines = append(lines, h.entries.Peek(i).(string))
	}

	return lines
}

type repl struct {
	session *ylang.Session
	mode    mode
	prompt  string
	history *history
}

func newREPL(session *ylang.Session, m mode, cfg *config.Config) *repl {
	return &repl{
		session: session,
		mode:    m,
		prompt:  cfg.Prompt,
		history: newHistory(cfg.HistorySize),
	}
}

// loop runs each line as an independent program until an empty line or the
// end of input. Failed lines are reported and do not end the session, but a
// failure that is not a script error, such as a failed write, does.
func (r *repl) loop(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, r.prompt)

		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		line = strings.TrimRight(line, "\r\n")
		switch strings.TrimSpace(line) {
		case "":
			return nil
		case historyCommand:
			for i, entry := range r.history.list() {
				fmt.Fprintf(out, "%4d  %s\n", i+1, entry)
			}

			continue
		}

		r.history.add(line)
		err = r.mode(r.session, line, out)
		if err != nil && !r.session.HadError() {
			return err
		}

		r.session.Reset()
	}
}
