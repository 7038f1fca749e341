// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package parser turns assembly source into an ast.Program.
package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/golang/glog"

	"github.com/cassiebeckley/sembler/pkg/ast"
	"github.com/cassiebeckley/sembler/pkg/encoding"
)

type parser struct {
	src []byte
	pos int
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

// Builds a ParseError positioned at offset, size bytes wide.
func (p *parser) errorAt(offset int, size int, format string, args ...interface{}) error {
	if size < 1 {
		size = 1
	}

	lineStart := bytes.LastIndexByte(p.src[:offset], '\n') + 1
	line := 1 + bytes.Count(p.src[:lineStart], []byte{'\n'})

	lineEnd := len(p.src)
	if i := bytes.IndexByte(p.src[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
	}

	if offset+size > lineEnd && offset < lineEnd {
		size = lineEnd - offset
	}

	if lineEnd-lineStart > MaxContext {
		lineEnd = lineStart + MaxContext
	}

	var context string
	if text := bytes.TrimRight(p.src[lineStart:lineEnd], "\r"); utf8.Valid(text) {
		context = string(text)
	}

	return &ParseError{
		Position: Cursor{
			Line:     line,
			Column:   offset - lineStart + 1,
			Byte:     int64(offset),
			Size:     int64(size),
			LineByte: int64(lineStart),
		},
		Message: fmt.Sprintf(format, args...),
		Context: context,
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return p.errorAt(p.pos, 1, format, args...)
}

func (p *parser) describe() string {
	if p.eof() {
		return "end of input"
	}

	c := p.peek()
	if c < 0x20 || c >= 0x7F {
		return fmt.Sprintf("byte 0x%02x", c)
	}

	return fmt.Sprintf("'%c'", c)
}

// Skips spaces, tabs, line breaks and ';' comments.
func (p *parser) whitespace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++

		case ';':
			if i := bytes.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}

		default:
			return
		}
	}
}

func (p *parser) identifier() string {
	start := p.pos

	for !p.eof() && isIdentChar(p.src[p.pos]) {
		p.pos++
	}

	return string(p.src[start:p.pos])
}

func (p *parser) expect(c byte) error {
	if p.eof() || p.peek() != c {
		return p.errorf("expected '%c', found %s", c, p.describe())
	}

	p.pos++
	return nil
}

func (p *parser) keyword(kw string) error {
	start := p.pos

	if ident := p.identifier(); ident != kw {
		p.pos = start
		return p.errorAt(start, len(ident), "expected '%s' section", kw)
	}

	return nil
}

func (p *parser) string() (string, error) {
	start := p.pos

	if err := p.expect('"'); err != nil {
		return "", err
	}

	end := bytes.IndexByte(p.src[p.pos:], '"')
	if end < 0 {
		return "", p.errorAt(start, 1, "unterminated string literal")
	}

	value := p.src[p.pos : p.pos+end]
	if !utf8.Valid(value) {
		return "", p.errorAt(start, end+2, "invalid UTF-8 in string literal")
	}

	p.pos += end + 1
	return string(value), nil
}

func (p *parser) literal() (uint32, error) {
	start := p.pos
	negative := false

	if p.peek() == '-' && !p.eof() {
		negative = true
		p.pos++
		p.whitespace()
	}

	digits := p.pos
	token := p.identifier()

	if token == "" {
		return 0, p.errorf("expected numeric literal, found %s", p.describe())
	}

	value, err := encoding.DecodeLiteral(token, negative)
	if err != nil {
		return 0, p.errorAt(
			digits, len(token), "malformed numeric literal '%s'", token,
		)
	}

	glog.V(3).Infof("literal %q at %d = %#x", p.src[start:p.pos], start, value)

	return value, nil
}

func (p *parser) word() (ast.Word, error) {
	if c := p.peek(); !p.eof() && (c == '-' || isDigit(c)) {
		value, err := p.literal()

		if err != nil {
			return nil, err
		}

		return ast.Literal(value), nil
	}

	if ident := p.identifier(); ident != "" {
		return ast.LabelRef(ident), nil
	}

	return nil, p.errorf("expected operand, found %s", p.describe())
}

func (p *parser) directive() (ast.Instruction, error) {
	start := p.pos
	p.pos++
	name := "." + p.identifier()

	switch name {
	case ast.DIRECTIVE_ASCIZ, ast.DIRECTIVE_ASCII:
		p.whitespace()
		s, err := p.string()

		if err != nil {
			return nil, err
		}

		if name == ast.DIRECTIVE_ASCIZ {
			return ast.Asciz(s), nil
		}

		return ast.Ascii(s), nil

	case ast.DIRECTIVE_DB, ast.DIRECTIVE_DW:
		p.whitespace()
		value, err := p.literal()

		if err != nil {
			return nil, err
		}

		if name == ast.DIRECTIVE_DB {
			return ast.DB(byte(value)), nil
		}

		return ast.DW(value), nil
	}

	return nil, p.errorAt(start, len(name), "unknown directive '%s'", name)
}

func (p *parser) instruction() (ast.Instruction, error) {
	if p.peek() == '.' && !p.eof() {
		return p.directive()
	}

	start := p.pos
	mnemonic := p.identifier()

	if mnemonic == "" {
		return nil, p.errorf("expected instruction, found %s", p.describe())
	}

	if op, ok := ast.LookupNullary(mnemonic); ok {
		return ast.Nullary{Op: op}, nil
	}

	if op, ok := ast.LookupUnary(mnemonic); ok {
		p.whitespace()
		arg, err := p.word()

		if err != nil {
			return nil, err
		}

		return ast.Unary{Op: op, Arg: arg}, nil
	}

	return nil, p.errorAt(
		start, len(mnemonic), "unknown mnemonic '%s'", mnemonic,
	)
}

func (p *parser) entry() (ast.Entry, error) {
	var entry ast.Entry

	start := p.pos
	if label := p.identifier(); label != "" && p.peek() == ':' && !p.eof() {
		entry.Label = label
		p.pos++
		p.whitespace()
	} else {
		p.pos = start
	}

	instruction, err := p.instruction()
	if err != nil {
		return entry, err
	}

	entry.Instruction = instruction
	p.whitespace()

	return entry, nil
}

func (p *parser) section(name string) ([]ast.Entry, error) {
	if err := p.keyword(name); err != nil {
		return nil, err
	}

	p.whitespace()

	open := p.pos
	if err := p.expect('{'); err != nil {
		return nil, err
	}

	entries := make([]ast.Entry, 0)

	for {
		p.whitespace()

		if p.eof() {
			return nil, p.errorAt(open, 1, "unmatched '{' in '%s' section", name)
		}

		if p.peek() == '}' {
			p.pos++
			break
		}

		entry, err := p.entry()
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	glog.V(2).Infof("parsed %s section: %d entries", name, len(entries))

	return entries, nil
}

// Parse parses a complete program. The error, if any, is a *ParseError.
func Parse(src []byte) (*ast.Program, error) {
	var err error
	var program ast.Program

	p := &parser{src: src}
	p.whitespace()

	if program.BSS, err = p.section(ast.SECTION_BSS); err != nil {
		return nil, err
	}

	p.whitespace()

	if program.Raw, err = p.section(ast.SECTION_RAW); err != nil {
		return nil, err
	}

	p.whitespace()

	if !p.eof() {
		return nil, p.errorAt(
			p.pos, len(p.src)-p.pos,
			"unexpected %s after '%s' section", p.describe(), ast.SECTION_RAW,
		)
	}

	return &program, nil
}
