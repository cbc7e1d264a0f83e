// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package substitute rewrites text according to a list of replacement rules
// before it is framed.
//
// A rule file has one rule per line of the form "from [to]", with the fields
// separated by white space. A rule without a "to" field deletes the matched
// text. Blank lines and lines starting with '#' are ignored.
package substitute

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// SyntaxError reports a malformed line in a rule file.
type SyntaxError struct {
	Line int    // Line number, starting at 1
	Msg  string // Description of the problem
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("substitute: line %d: %s", e.Line, e.Msg)
}

// Rule replaces From with To.
type Rule struct {
	From string
	To   string
}

// ParseRules reads a rule file.
func ParseRules(r io.Reader) ([]Rule, error) {
	var rules []Rule
	scan := bufio.NewScanner(r)
	for n := 1; scan.Scan(); n++ {
		fields := strings.Fields(scan.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch len(fields) {
		case 1:
			rules = append(rules, Rule{From: fields[0]})
		case 2:
			rules = append(rules, Rule{From: fields[0], To: fields[1]})
		default:
			return nil, &SyntaxError{Line: n, Msg: fmt.Sprintf("got %d fields, want 1 or 2", len(fields))}
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Mode selects what text a rule matches.
type Mode int

const (
	// WholeWord matches whole words only. Words are delimited by spaces and
	// newlines, which are kept as they are. Carriage returns are dropped.
	WholeWord Mode = iota

	// Substring matches any occurrence of the text, scanning from left to
	// right without overlapping matches.
	Substring
)

// Substituter applies a fixed set of rules to text.
// It is safe for concurrent use.
type Substituter struct {
	mode  Mode
	words map[string]string // For WholeWord
	repl  *strings.Replacer // For Substring
}

// New returns a Substituter for the rules. When several rules match at the
// same place, the one listed first wins.
func New(rules []Rule, mode Mode) *Substituter {
	s := &Substituter{mode: mode}
	switch mode {
	case WholeWord:
		s.words = make(map[string]string, len(rules))
		for _, r := range rules {
			if _, ok := s.words[r.From]; !ok {
				s.words[r.From] = r.To
			}
		}
	case Substring:
		var oldnew []string
		for _, r := range rules {
			if r.From != "" {
				oldnew = append(oldnew, r.From, r.To)
			}
		}
		s.repl = strings.NewReplacer(oldnew...)
	default:
		panic(fmt.Sprintf("substitute: unknown mode %d", mode))
	}
	return s
}

// Apply returns text with the rules applied.
func (s *Substituter) Apply(text []byte) []byte {
	if s.mode == Substring {
		return []byte(s.repl.Replace(string(text)))
	}

	text = bytes.ReplaceAll(text, []byte("\r"), nil)
	out := make([]byte, 0, len(text))
	var start int
	for i, c := range text {
		if c == ' ' || c == '\n' {
			out = append(out, s.word(text[start:i])...)
			out = append(out, c)
			start = i + 1
		}
	}
	return append(out, s.word(text[start:])...)
}

func (s *Substituter) word(w []byte) []byte {
	if to, ok := s.words[string(w)]; ok {
		return []byte(to)
	}
	return w
}
