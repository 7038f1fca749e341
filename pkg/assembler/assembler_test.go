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

package assembler_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/cassiebeckley/sembler/pkg/assembler"
	"github.com/cassiebeckley/sembler/pkg/ast"
	"github.com/cassiebeckley/sembler/pkg/parser"
)

type testCase struct {
	Name       string
	Input      string
	EntryPoint string
	BSS        []byte
	Raw        []byte
	Addr       uint32
}

type failCase struct {
	Name       string
	Input      string
	EntryPoint string
	Error      error
}

func assemble(t *testing.T, input string, entryPoint string) (*assembler.Blob, error) {
	program, err := parser.Parse([]byte(input))

	if err != nil {
		t.Fatal(err)
	}

	if entryPoint == "" {
		entryPoint = assembler.DefaultEntryPoint
	}

	return assembler.Assemble(program, entryPoint)
}

func testAssemblerSuccess(t *testing.T, test *testCase) {
	blob, err := assemble(t, test.Input, test.EntryPoint)

	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(blob.BSS, test.BSS) {
		t.Fatalf(
			"bss encoding mismatch\n"+
				"want:% x (test.BSS)\n"+
				"have:% x",
			test.BSS,
			blob.BSS,
		)
	}

	if !bytes.Equal(blob.Raw, test.Raw) {
		t.Fatalf(
			"raw encoding mismatch\n"+
				"want:% x (test.Raw)\n"+
				"have:% x",
			test.Raw,
			blob.Raw,
		)
	}

	if blob.EntryPoint != test.Addr {
		t.Fatalf(
			"Entry point mismatch\n"+
				"want:%#08x (test.Addr)\n"+
				"have:%#08x",
			test.Addr,
			blob.EntryPoint,
		)
	}
}

func testAssemblerFail(t *testing.T, test *failCase) {
	if test.Error == nil {
		panic("Fail case missing error value")
	}

	blob, err := assemble(t, test.Input, test.EntryPoint)

	if err == nil {
		t.Fatalf(
			"%s produced no error"+
				"\nwant:%T (test.Error)\nhave:<nil>",
			t.Name(),
			test.Error,
		)
	}

	if blob != nil {
		t.Fatalf("%s produced a partial result alongside %v", t.Name(), err)
	}

	if reflect.TypeOf(err) != reflect.TypeOf(test.Error) {
		t.Fatalf(
			"%s produced error of incorrect type"+
				"\nwant:%T (test.Error)\nhave:%T",
			t.Name(),
			test.Error,
			err,
		)
	}

	if !reflect.DeepEqual(err, test.Error) {
		t.Fatalf(
			"%s produced incorrect error\nwant:%v\nhave:%v",
			t.Name(),
			test.Error,
			err,
		)
	}
}

func testSuccess(t *testing.T, tests []testCase) {
	t.Run("Success", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				t.Parallel()
				testAssemblerSuccess(t, &test)
			})
		}
	})
}

func testFail(t *testing.T, tests []failCase) {
	t.Run("Fail", func(t *testing.T) {
		for _, test := range tests {
			test := test
			t.Run(test.Name, func(t *testing.T) {
				t.Parallel()
				testAssemblerFail(t, &test)
			})
		}
	})
}

func TestAssemble(t *testing.T) {
	testSuccess(t, []testCase{
		{
			Name:       "Entry Point",
			Input:      `bss { } raw { start: PSH RET }`,
			EntryPoint: "start",
			BSS:        []byte{},
			Raw:        []byte{0x10, 0x18},
			Addr:       0,
		},
		{
			Name: "Nullary Operations",
			Input: `
			bss { }
			raw {
			main:	PUSHARG LI LC SI SC SWAP POP RET
				EQ NE LT GT LE GE
				ADD SUB MUL DIV MOD AND OR XOR
			}
			`,
			BSS: []byte{},
			Raw: []byte{
				0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
				0x20, 0x21, 0x22, 0x23, 0x24, 0x25,
				0x26, 0x27, 0x28, 0x29, 0x2A, 0x2B, 0x2C, 0x2D,
			},
		},
		{
			Name: "Unary Operations",
			Input: `
			bss { }
			raw {
			main:
				IMM 0x1
				REL 2
				JMP 0x3
				BZ 4
				BNZ 5
				ENT 6
				ADJ 7
				JSR 8
				INT 0xFFFFFFFF
			}
			`,
			BSS: []byte{},
			Raw: []byte{
				0x01, 0x00, 0x00, 0x00, 0x01,
				0x02, 0x00, 0x00, 0x00, 0x02,
				0x03, 0x00, 0x00, 0x00, 0x03,
				0x04, 0x00, 0x00, 0x00, 0x04,
				0x05, 0x00, 0x00, 0x00, 0x05,
				0x06, 0x00, 0x00, 0x00, 0x06,
				0x07, 0x00, 0x00, 0x00, 0x07,
				0x08, 0x00, 0x00, 0x00, 0x08,
				0x09, 0xFF, 0xFF, 0xFF, 0xFF,
			},
		},
		{
			Name: "Negative Literals",
			Input: `
			bss { }
			raw {
			main:	ADJ -4
				IMM - 0x1
				.db -1
				.dw -2
			}
			`,
			BSS: []byte{},
			Raw: []byte{
				0x07, 0xFF, 0xFF, 0xFF, 0xFC,
				0x01, 0xFF, 0xFF, 0xFF, 0xFF,
				0xFF,
				0xFF, 0xFF, 0xFF, 0xFE,
			},
		},
		{
			Name: "Forwards Label",
			Input: `
			bss { }
			raw {
			main:	JMP end
				PSH
			end:	RET
			}
			`,
			BSS: []byte{},
			Raw: []byte{0x03, 0x00, 0x00, 0x00, 0x06, 0x10, 0x18},
		},
		{
			Name: "Backwards Label",
			Input: `
			bss { }
			raw {
				PSH
			main:	IMM 0x1
			loop:	BNZ loop
			}
			`,
			BSS:  []byte{},
			Raw:  []byte{0x10, 0x01, 0x00, 0x00, 0x00, 0x01, 0x05, 0x00, 0x00, 0x00, 0x06},
			Addr: 1,
		},
		{
			Name: "Placeholder Advances Four Bytes",
			Input: `
			bss { }
			raw {
			main:	JSR sub
				JSR sub
			sub:	RET
			}
			`,
			BSS: []byte{},
			Raw: []byte{
				0x08, 0x00, 0x00, 0x00, 0x0A,
				0x08, 0x00, 0x00, 0x00, 0x0A,
				0x18,
			},
		},
		{
			Name: "Strings",
			Input: `
			bss {
			msg:	.asciz "AB"
			tail:	.ascii "AB"
			}
			raw {
			main:	IMM msg
				IMM tail
			}
			`,
			BSS: []byte{0x41, 0x42, 0x00, 0x41, 0x42},
			Raw: []byte{
				0x01, 0x00, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00, 0x03,
			},
		},
		{
			// Both sections are addressed from zero
			Name: "Cross Section Reference",
			Input: `
			bss {
			pad:	.db 0x7
			data:	.dw 0xDEADBEEF
			}
			raw {
			main:	IMM data
				JSR main
			}
			`,
			BSS: []byte{0x07, 0xDE, 0xAD, 0xBE, 0xEF},
			Raw: []byte{
				0x01, 0x00, 0x00, 0x00, 0x01,
				0x08, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			Name:       "Entry Point In bss",
			Input:      `bss { .db 1 here: .db 2 } raw { main: RET }`,
			EntryPoint: "here",
			BSS:        []byte{0x01, 0x02},
			Raw:        []byte{0x18},
			Addr:       1,
		},
		{
			Name: "Comments",
			Input: "; program header\n" +
				"bss { ; nothing here\n" +
				"}\r\n" +
				"raw {\n" +
				"main: ; entry\n" +
				"\tRET ; done\n" +
				"} ; end of file",
			BSS: []byte{},
			Raw: []byte{0x18},
		},
	})

	testFail(t, []failCase{
		{
			Name:  "Duplicate Symbol",
			Input: `bss { } raw { main: PSH main: RET }`,
			Error: &assembler.DuplicateSymbolError{Section: "raw", Symbol: "main"},
		},
		{
			Name:  "Duplicate Symbol Across Sections",
			Input: `bss { main: .db 0 } raw { main: RET }`,
			Error: &assembler.DuplicateSymbolError{Section: "raw", Symbol: "main"},
		},
		{
			Name:  "Duplicate Symbol In bss",
			Input: `bss { x: .db 0 x: .db 1 } raw { main: RET }`,
			Error: &assembler.DuplicateSymbolError{Section: "bss", Symbol: "x"},
		},
		{
			Name:  "Undefined Symbol",
			Input: `bss { } raw { main: JMP nowhere }`,
			Error: &assembler.UndefinedSymbolError{Section: "raw", Symbol: "nowhere"},
		},
		{
			Name:  "Undefined Symbol In bss",
			Input: `bss { IMM nowhere } raw { main: RET }`,
			Error: &assembler.UndefinedSymbolError{Section: "bss", Symbol: "nowhere"},
		},
		{
			Name:  "Missing Entry Point",
			Input: `bss { } raw { start: RET }`,
			Error: &assembler.MissingEntryPointError{Symbol: "main"},
		},
		{
			Name:       "Missing Named Entry Point",
			Input:      `bss { } raw { main: RET }`,
			EntryPoint: "start",
			Error:      &assembler.MissingEntryPointError{Symbol: "start"},
		},
	})
}

func TestUndefinedSymbolName(t *testing.T) {
	_, err := assemble(t, `bss { } raw { main: BZ missing_label }`, "")

	var undefined *assembler.UndefinedSymbolError

	if !errors.As(err, &undefined) {
		t.Fatalf("want:*assembler.UndefinedSymbolError\nhave:%T", err)
	}

	if undefined.Symbol != "missing_label" {
		t.Fatalf(
			"Undefined symbol name mismatch\nwant:%s\nhave:%s",
			"missing_label",
			undefined.Symbol,
		)
	}
}

func TestFirstPass(t *testing.T) {
	entries := []ast.Entry{
		{Label: "start", Instruction: ast.Nullary{Op: ast.NULLARY_PSH}},
		{Instruction: ast.Unary{Op: ast.UNARY_JMP, Arg: ast.LabelRef("end")}},
		{Label: "mid", Instruction: ast.Unary{Op: ast.UNARY_IMM, Arg: ast.Literal(2)}},
		{Label: "end", Instruction: ast.Asciz("A")},
	}

	symbols := make(assembler.SymTable)
	entities, err := assembler.FirstPass(ast.SECTION_RAW, entries, symbols)

	if err != nil {
		t.Fatal(err)
	}

	wantEntities := []ast.Entity{
		{Value: 0x10},
		{Value: 0x03},
		{Ref: "end"},
		{Value: 0x01},
		{Value: 0x00}, {Value: 0x00}, {Value: 0x00}, {Value: 0x02},
		{Value: 0x41},
		{Value: 0x00},
	}

	if !reflect.DeepEqual(entities, wantEntities) {
		t.Fatalf("Entity stream mismatch\nwant:%v\nhave:%v", wantEntities, entities)
	}

	wantSymbols := assembler.SymTable{"start": 0, "mid": 6, "end": 11}

	if !reflect.DeepEqual(symbols, wantSymbols) {
		t.Fatalf("Symbol table mismatch\nwant:%v\nhave:%v", wantSymbols, symbols)
	}
}

func TestFirstPassSharedTable(t *testing.T) {
	symbols := make(assembler.SymTable)

	bss := []ast.Entry{{Label: "a", Instruction: ast.DB(1)}}
	raw := []ast.Entry{{Label: "a", Instruction: ast.Nullary{Op: ast.NULLARY_RET}}}

	if _, err := assembler.FirstPass(ast.SECTION_BSS, bss, symbols); err != nil {
		t.Fatal(err)
	}

	_, err := assembler.FirstPass(ast.SECTION_RAW, raw, symbols)

	var duplicate *assembler.DuplicateSymbolError

	if !errors.As(err, &duplicate) {
		t.Fatalf("want:*assembler.DuplicateSymbolError\nhave:%T", err)
	}

	if addr := symbols["a"]; addr != 0 {
		t.Fatalf("Duplicate definition overwrote symbol\nwant:0\nhave:%d", addr)
	}
}

func TestSecondPass(t *testing.T) {
	symbols := assembler.SymTable{"target": 0x01020304}
	entities := []ast.Entity{{Value: 0xAA}, {Ref: "target"}, {Value: 0xBB}}

	result, err := assembler.SecondPass(ast.SECTION_RAW, entities, symbols)

	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0xAA, 0x01, 0x02, 0x03, 0x04, 0xBB}

	if !bytes.Equal(result, want) {
		t.Fatalf("Expansion mismatch\nwant:% x\nhave:% x", want, result)
	}
}

// Emits each entry with every label address already known.
func emitWithAddresses(entries []ast.Entry, addrs map[string]uint32) []byte {
	var result []byte

	for _, entry := range entries {
		inst := entry.Instruction

		if unary, ok := inst.(ast.Unary); ok {
			if ref, ok := unary.Arg.(ast.LabelRef); ok {
				unary.Arg = ast.Literal(addrs[string(ref)])
				inst = unary
			}
		}

		for _, entity := range inst.Entities() {
			result = append(result, entity.Value)
		}
	}

	return result
}

func TestForwardReferencesMatchKnownAddresses(t *testing.T) {
	programs := []struct {
		Source string
		Addrs  map[string]uint32
	}{
		{
			Source: `bss { } raw { main: JMP a PSH a: JSR b .asciz "xyz" b: RET }`,
			Addrs:  map[string]uint32{"a": 6, "b": 15},
		},
		{
			Source: `bss { } raw { main: BZ c BNZ c IMM c .dw 1 c: POP }`,
			Addrs:  map[string]uint32{"c": 19},
		},
	}

	for _, program := range programs {
		parsed, err := parser.Parse([]byte(program.Source))

		if err != nil {
			t.Fatal(err)
		}

		blob, err := assembler.Assemble(parsed, assembler.DefaultEntryPoint)

		if err != nil {
			t.Fatal(err)
		}

		want := emitWithAddresses(parsed.Raw, program.Addrs)

		if !bytes.Equal(blob.Raw, want) {
			t.Fatalf(
				"Two-pass output differs for %q\nwant:% x\nhave:% x",
				program.Source,
				want,
				blob.Raw,
			)
		}
	}
}

func TestDeterministic(t *testing.T) {
	source := `bss { s: .asciz "hi" n: .dw 5 } raw { main: IMM s IMM n JSR f f: RET }`

	first, err := assemble(t, source, "")

	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 16; i++ {
		again, err := assemble(t, source, "")

		if err != nil {
			t.Fatal(err)
		}

		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Assembly is not deterministic\nwant:%v\nhave:%v", first, again)
		}
	}
}
