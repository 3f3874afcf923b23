// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A literal is a parsed Python literal: one of float64, string,
// []literal (list or tuple) or *dict.
type literal interface{}

type dict struct {
	keys []string
	vals map[string]literal
	line map[string]int // line of each key, for errors
}

// A parser parses the subset of Python literal syntax printed by the
// benchmark binaries: dicts with string keys, lists, tuples, strings,
// numbers, and the names True, False, None, nan and inf.
type parser struct {
	src  []byte
	pos  int
	line int

	fileName string
}

func (p *parser) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{p.fileName, p.line, fmt.Sprintf(format, args...)}
}

// skip advances past white space and comments.
func (p *parser) skip() {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '\n':
			p.line++
			p.pos++
		case ' ', '\t', '\r':
			p.pos++
		case '#':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// atEOF reports whether only white space remains.
func (p *parser) atEOF() bool {
	p.skip()
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	p.skip()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) *SyntaxError {
	if got := p.peek(); got != c {
		return p.errorf("expected %q, found %s", c, p.describe())
	}
	p.pos++
	return nil
}

// describe names the token at the current position for errors.
func (p *parser) describe() string {
	if p.pos >= len(p.src) {
		return "end of input"
	}
	end := p.pos + 1
	for end < len(p.src) && end-p.pos < 12 && isIdent(p.src[end]) && isIdent(p.src[p.pos]) {
		end++
	}
	return strconv.Quote(string(p.src[p.pos:end]))
}

// value parses one literal.
func (p *parser) value() (literal, *SyntaxError) {
	switch c := p.peek(); {
	case c == 0:
		return nil, p.errorf("unexpected end of input")
	case c == '{':
		return p.dict()
	case c == '[':
		p.pos++
		return p.sequence(']')
	case c == '(':
		p.pos++
		return p.sequence(')')
	case c == '\'' || c == '"':
		return p.str()
	case c == '-' || c == '+' || c == '.' || ('0' <= c && c <= '9'):
		return p.number()
	case isIdent(c):
		return p.ident()
	}
	return nil, p.errorf("unexpected %s", p.describe())
}

func (p *parser) dict() (literal, *SyntaxError) {
	p.pos++ // '{'
	d := &dict{vals: make(map[string]literal), line: make(map[string]int)}
	for {
		if p.peek() == '}' {
			p.pos++
			return d, nil
		}
		k, err := p.value()
		if err != nil {
			return nil, err
		}
		key, ok := k.(string)
		if !ok {
			return nil, p.errorf("dict key must be a string")
		}
		line := p.line
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		if _, dup := d.vals[key]; !dup {
			d.keys = append(d.keys, key)
		}
		d.vals[key] = v
		d.line[key] = line
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
		default:
			return nil, p.errorf("expected ',' or '}' in dict, found %s", p.describe())
		}
	}
}

func (p *parser) sequence(close byte) (literal, *SyntaxError) {
	seq := []literal{}
	for {
		if p.peek() == close {
			p.pos++
			return seq, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
		switch p.peek() {
		case ',':
			p.pos++
		case close:
		default:
			return nil, p.errorf("expected ',' or %q, found %s", close, p.describe())
		}
	}
}

func (p *parser) str() (literal, *SyntaxError) {
	quote := p.src[p.pos]
	p.pos++
	var sb strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case quote:
			return sb.String(), nil
		case '\n':
			return nil, p.errorf("newline in string")
		case '\\':
			if p.pos >= len(p.src) {
				return nil, p.errorf("unterminated string")
			}
			e := p.src[p.pos]
			p.pos++
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(e)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return nil, p.errorf("unterminated string")
}

func (p *parser) number() (literal, *SyntaxError) {
	start := p.pos
	if c := p.src[p.pos]; c == '-' || c == '+' {
		p.pos++
		// printf("%f") writes "-inf" and "-nan".
		if p.pos < len(p.src) && isIdent(p.src[p.pos]) && !isDigit(p.src[p.pos]) {
			v, err := p.ident()
			if err != nil {
				return nil, err
			}
			f, ok := v.(float64)
			if !ok {
				return nil, p.errorf("bad number %q", p.src[start:p.pos])
			}
			if c == '-' {
				f = -f
			}
			return f, nil
		}
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isDigit(c) || c == '.' || c == 'e' || c == 'E' ||
			((c == '-' || c == '+') && (p.src[p.pos-1] == 'e' || p.src[p.pos-1] == 'E')) {
			p.pos++
			continue
		}
		break
	}
	// Python 2 long integers end in "L".
	text := string(p.src[start:p.pos])
	if p.pos < len(p.src) && p.src[p.pos] == 'L' {
		p.pos++
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, p.errorf("bad number %q", text)
	}
	return f, nil
}

func (p *parser) ident() (literal, *SyntaxError) {
	start := p.pos
	for p.pos < len(p.src) && isIdent(p.src[p.pos]) {
		p.pos++
	}
	switch id := string(p.src[start:p.pos]); id {
	case "True":
		return 1.0, nil
	case "False":
		return 0.0, nil
	case "None":
		return math.NaN(), nil
	case "nan", "NaN":
		return math.NaN(), nil
	case "inf", "Inf":
		return math.Inf(1), nil
	default:
		return nil, p.errorf("unexpected name %q", id)
	}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdent(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
