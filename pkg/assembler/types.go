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

package assembler

import (
	"fmt"
)

// SymTable maps every label in the program to its offset within the
// section that defines it. Labels from both sections share one namespace.
type SymTable map[string]uint32

// Define binds label to addr. An existing binding is never overwritten.
func (symbols SymTable) Define(section string, label string, addr uint32) error {
	if _, exists := symbols[label]; exists {
		return &DuplicateSymbolError{Section: section, Symbol: label}
	}

	symbols[label] = addr
	return nil
}

// Blob is the assembled program.
type Blob struct {
	BSS        []byte
	Raw        []byte
	EntryPoint uint32
}

type DuplicateSymbolError struct {
	Section string
	Symbol  string
}

func (err *DuplicateSymbolError) Error() string {
	return fmt.Sprintf(
		"%s: Duplicate symbol '%s'", err.Section, err.Symbol,
	)
}

type UndefinedSymbolError struct {
	Section string
	Symbol  string
}

func (err *UndefinedSymbolError) Error() string {
	return fmt.Sprintf(
		"%s: Undefined symbol '%s'", err.Section, err.Symbol,
	)
}

type MissingEntryPointError struct {
	Symbol string
}

func (err *MissingEntryPointError) Error() string {
	return fmt.Sprintf("Missing entry point '%s'", err.Symbol)
}
