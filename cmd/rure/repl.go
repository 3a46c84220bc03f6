package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/coregx/rure"
)

const replHelp = `commands:
  :pattern PATTERN   compile a new pattern
  :flags [TOKEN...]  set flag tokens and recompile (none = defaults)
  :captures          toggle printing of capture groups
  :quit              leave
any other line is searched with the current pattern`

// session is the state of an interactive run.
type session struct {
	config   rure.Config
	tokens   []string
	pattern  string
	re       *rure.Regex
	captures bool
}

func runREPL(tokens []string, config rure.Config) error {
	rl, err := readline.New("rure> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &session{config: config, tokens: tokens}
	fmt.Fprintln(os.Stderr, replHelp)
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if s.handle(line, rl.Stdout()) {
			return nil
		}
		if s.pattern != "" {
			rl.SetPrompt(fmt.Sprintf("rure /%s/> ", s.pattern))
		}
	}
}

// handle runs one input line and reports whether the session should end.
func (s *session) handle(line string, w io.Writer) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(w, replHelp)
	case ":pattern":
		s.recompile(arg, s.tokens, w)
	case ":flags":
		s.recompile(s.pattern, strings.Fields(arg), w)
	case ":captures":
		s.captures = !s.captures
		fmt.Fprintf(w, "captures %v\n", map[bool]string{true: "on", false: "off"}[s.captures])
	default:
		s.search([]byte(line), w)
	}
	return false
}

func (s *session) recompile(pattern string, tokens []string, w io.Writer) {
	re, err := compile(pattern, tokens, s.config)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	s.pattern, s.tokens, s.re = pattern, tokens, re
	fmt.Fprintf(w, "pattern /%s/ flags %s, %d groups\n", pattern, re.Flags(), re.NumCaptures())
}

func (s *session) search(haystack []byte, w io.Writer) {
	if s.re == nil {
		fmt.Fprintln(w, "no pattern; use :pattern PATTERN")
		return
	}
	it := s.re.Iter(haystack)
	caps := s.re.NewCaptures()
	names := s.re.CaptureNames()
	found := 0
	for it.NextCaptures(caps) {
		found++
		m, _ := caps.At(0)
		fmt.Fprintf(w, "%s %q\n", m, caps.String(0))
		if !s.captures {
			continue
		}
		for i := 1; i < caps.Len(); i++ {
			label := fmt.Sprint(i)
			if names[i] != "" {
				label += " " + names[i]
			}
			if g, ok := caps.At(i); ok {
				fmt.Fprintf(w, "  %s: %s %q\n", label, g, caps.String(i))
			} else {
				fmt.Fprintf(w, "  %s: unset\n", label)
			}
		}
	}
	if found == 0 {
		fmt.Fprintln(w, "no match")
	}
}
