// Package mmcif reads enough of an mmcif formatted file to rebuild
// biological assemblies: the coordinate table, the entity table and
// the three assembly categories. Make a Reader, maybe tell it about
// more tables you want kept, then call Read.
package mmcif

// 13 Mar 2026

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
)

const (
	squote byte = '\''
	dquote byte = '"'
)

// readError remembers the line number and the line that broke, so the
// message a user sees points at the file, not at us.
type readError struct {
	n      int    // line number
	inline string // the line that provoked the error
	desc   string
}

const maxMsgLen = 70

func (e readError) Error() string {
	s := e.desc
	if e.n > 0 {
		s += " at line " + strconv.Itoa(e.n)
	}
	if e.inline != "" {
		t := e.inline
		if len(t) > maxMsgLen {
			t = t[:maxMsgLen] + "..."
		}
		s += ": " + t
	}
	return s
}

// cmmtScanner wraps a bufio.Scanner. It skips blank lines and
// comment lines and counts newlines for error messages. The first
// error sticks in lerr and flips ok. Later calls just fall through.
type cmmtScanner struct {
	*bufio.Scanner
	token []byte
	n     int  // line number
	cmmt  byte // comment character
	ok    bool
	lerr  readError
}

func newCmmtScanner(r io.Reader, cmmt byte) cmmtScanner {
	return cmmtScanner{Scanner: bufio.NewScanner(r), cmmt: cmmt, ok: true}
}

// fill records the problem we just hit. saveLine keeps the current
// line for the message. If an earlier error was never picked up, both
// get reported.
func (s *cmmtScanner) fill(desc string, saveLine bool) {
	if !s.ok {
		desc = s.lerr.desc + "; then " + desc
	}
	s.ok = false
	s.lerr.desc = desc
	if saveLine {
		s.lerr.n = s.n
		s.lerr.inline = string(s.token)
	}
}

// cscan advances to the next interesting line. It returns true on
// success and on plain end of file. After end of file cbytes gives
// nil, which is how callers see that the file ran out.
func (s *cmmtScanner) cscan() bool {
	if !s.ok {
		s.token = nil
		return false
	}
	for {
		if !s.Scan() {
			s.token = nil
			if err := s.Err(); err != nil {
				s.fill(err.Error(), false)
				return false
			}
			return true // just EOF
		}
		s.n++
		// crlf files leave a \r on every line
		b := bytes.TrimRight(s.Bytes(), "\r")
		if len(b) > 0 && b[0] != ';' { // ';' in column one is load bearing
			b = bytes.TrimSpace(b)
		}
		if len(b) == 0 || b[0] == s.cmmt {
			continue
		}
		s.token = b
		return true
	}
}

// cbytes returns the current line, nil after end of file.
func (s *cmmtScanner) cbytes() []byte { return s.token }
