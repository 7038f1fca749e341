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

// Package ast holds the in-memory form of a parsed program and the rules
// for turning each instruction into bytes.
package ast

import (
	"fmt"
	"strings"

	"github.com/cassiebeckley/sembler/pkg/encoding"
)

type NullaryOp uint
type UnaryOp uint

// Word is the operand of a unary operation: a Literal or a LabelRef.
type Word interface {
	String() string
	isWord()
}

type Literal uint32
type LabelRef string

func (Literal) isWord()  {}
func (LabelRef) isWord() {}

func (w Literal) String() string {
	return fmt.Sprintf("0x%X", uint32(w))
}

func (w LabelRef) String() string {
	return string(w)
}

// Instruction is one of Asciz, Ascii, DB, DW, Nullary or Unary.
type Instruction interface {
	Entities() []Entity
	String() string
	isInstruction()
}

// Null-terminated string
type Asciz string

// String without terminator
type Ascii string

type DB byte
type DW uint32

type Nullary struct {
	Op NullaryOp
}

type Unary struct {
	Op  UnaryOp
	Arg Word
}

func (Asciz) isInstruction()   {}
func (Ascii) isInstruction()   {}
func (DB) isInstruction()      {}
func (DW) isInstruction()      {}
func (Nullary) isInstruction() {}
func (Unary) isInstruction()   {}

// Entry is a single program line. An empty Label means the line is
// unlabelled.
type Entry struct {
	Label       string
	Instruction Instruction
}

type Program struct {
	BSS []Entry
	Raw []Entry
}

// Entity is either a resolved byte or, when Ref is set, a placeholder for
// the 4-byte address of the named label.
type Entity struct {
	Value byte
	Ref   string
}

func (e Entity) IsRef() bool {
	return e.Ref != ""
}

// Size is the number of output bytes the entity expands to.
func (e Entity) Size() uint32 {
	if e.IsRef() {
		return 4
	}

	return 1
}

func (e Entity) String() string {
	if e.IsRef() {
		return "[" + e.Ref + "]"
	}

	return fmt.Sprintf("%02x", e.Value)
}

func bytesOf(values ...byte) []Entity {
	entities := make([]Entity, 0, len(values))

	for _, value := range values {
		entities = append(entities, Entity{Value: value})
	}

	return entities
}

func wordOf(value uint32) []Entity {
	word := encoding.SplitWord(value)
	return bytesOf(word[:]...)
}

func (s Asciz) Entities() []Entity {
	return append(bytesOf([]byte(s)...), Entity{Value: 0})
}

func (s Ascii) Entities() []Entity {
	return bytesOf([]byte(s)...)
}

func (b DB) Entities() []Entity {
	return bytesOf(byte(b))
}

func (w DW) Entities() []Entity {
	return wordOf(uint32(w))
}

func (n Nullary) Entities() []Entity {
	return bytesOf(n.Op.Opcode())
}

func (u Unary) Entities() []Entity {
	entities := bytesOf(u.Op.Opcode())

	switch arg := u.Arg.(type) {
	case Literal:
		entities = append(entities, wordOf(uint32(arg))...)
	case LabelRef:
		entities = append(entities, Entity{Ref: string(arg)})
	default:
		panic("invalid unary operand")
	}

	return entities
}

func (e Entry) Entities() []Entity {
	return e.Instruction.Entities()
}

func (s Asciz) String() string {
	return DIRECTIVE_ASCIZ + ` "` + string(s) + `"`
}

func (s Ascii) String() string {
	return DIRECTIVE_ASCII + ` "` + string(s) + `"`
}

func (b DB) String() string {
	return fmt.Sprintf("%s 0x%02X", DIRECTIVE_DB, byte(b))
}

func (w DW) String() string {
	return fmt.Sprintf("%s 0x%08X", DIRECTIVE_DW, uint32(w))
}

func (n Nullary) String() string {
	return n.Op.String()
}

func (u Unary) String() string {
	return u.Op.String() + " " + u.Arg.String()
}

func (e Entry) String() string {
	if e.Label == "" {
		return e.Instruction.String()
	}

	return e.Label + ": " + e.Instruction.String()
}

func writeSection(builder *strings.Builder, name string, entries []Entry) {
	builder.WriteString(name)
	builder.WriteString(" {\n")

	for _, entry := range entries {
		builder.WriteString("\t")
		builder.WriteString(entry.String())
		builder.WriteString("\n")
	}

	builder.WriteString("}\n")
}

// String renders the program as source text that parses back into an
// identical Program.
func (p *Program) String() string {
	var builder strings.Builder

	writeSection(&builder, SECTION_BSS, p.BSS)
	builder.WriteString("\n")
	writeSection(&builder, SECTION_RAW, p.Raw)

	return builder.String()
}
