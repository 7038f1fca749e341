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

// Package assembler resolves labels and emits the final section bytes.
//
// Assembly runs in two passes. FirstPass lays out a section, binding each
// label to its offset and flattening instructions into entities, where a
// label operand is left as a 4-byte placeholder. SecondPass expands those
// placeholders using the completed symbol table. Each section is addressed
// from 0, but both sections bind into the same SymTable.
package assembler

import (
	"sort"

	"github.com/golang/glog"

	"github.com/cassiebeckley/sembler/pkg/ast"
	"github.com/cassiebeckley/sembler/pkg/encoding"
)

func FirstPass(section string, entries []ast.Entry, symbols SymTable) ([]ast.Entity, error) {
	var offset uint32 = 0
	var entities = make([]ast.Entity, 0, len(entries))

	for _, entry := range entries {
		if entry.Label != "" {
			if err := symbols.Define(section, entry.Label, offset); err != nil {
				return nil, err
			}

			glog.V(2).Infof("%s: %q = %#08x", section, entry.Label, offset)
		}

		for _, entity := range entry.Entities() {
			entities = append(entities, entity)
			offset += entity.Size()
		}
	}

	glog.V(1).Infof(
		"pass 1: %s section laid out, %d entities, %d bytes",
		section, len(entities), offset,
	)

	return entities, nil
}

func SecondPass(section string, entities []ast.Entity, symbols SymTable) ([]byte, error) {
	var result = make([]byte, 0, len(entities))

	for _, entity := range entities {
		if !entity.IsRef() {
			result = append(result, entity.Value)
			continue
		}

		addr, exists := symbols[entity.Ref]

		if !exists {
			return nil, &UndefinedSymbolError{Section: section, Symbol: entity.Ref}
		}

		word := encoding.SplitWord(addr)
		result = append(result, word[:]...)
	}

	glog.V(1).Infof("pass 2: %s section emitted, %d bytes", section, len(result))

	return result, nil
}

func dumpSymbols(symbols SymTable) {
	labels := make([]string, 0, len(symbols))

	for label := range symbols {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	for _, label := range labels {
		glog.Infof("symbol %-16s %#08x", label, symbols[label])
	}
}

// Assemble assembles both sections of program and resolves entryPoint.
// The first error aborts the run.
func Assemble(program *ast.Program, entryPoint string) (*Blob, error) {
	var blob Blob
	var symbols = make(SymTable)

	bss, err := FirstPass(ast.SECTION_BSS, program.BSS, symbols)
	if err != nil {
		return nil, err
	}

	raw, err := FirstPass(ast.SECTION_RAW, program.Raw, symbols)
	if err != nil {
		return nil, err
	}

	if glog.V(2) {
		dumpSymbols(symbols)
	}

	if blob.BSS, err = SecondPass(ast.SECTION_BSS, bss, symbols); err != nil {
		return nil, err
	}

	if blob.Raw, err = SecondPass(ast.SECTION_RAW, raw, symbols); err != nil {
		return nil, err
	}

	addr, exists := symbols[entryPoint]

	if !exists {
		return nil, &MissingEntryPointError{Symbol: entryPoint}
	}

	blob.EntryPoint = addr

	return &blob, nil
}
