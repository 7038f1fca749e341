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

package ast

const (
	SECTION_BSS = "bss"
	SECTION_RAW = "raw"
)

const (
	// Stack and memory
	NULLARY_PSH NullaryOp = iota
	NULLARY_PUSHARG
	NULLARY_LI
	NULLARY_LC
	NULLARY_SI
	NULLARY_SC
	NULLARY_SWAP
	NULLARY_POP
	NULLARY_RET

	// Comparison
	NULLARY_EQ
	NULLARY_NE
	NULLARY_LT
	NULLARY_GT
	NULLARY_LE
	NULLARY_GE

	// Arithmetic and logic
	NULLARY_ADD
	NULLARY_SUB
	NULLARY_MUL
	NULLARY_DIV
	NULLARY_MOD
	NULLARY_AND
	NULLARY_OR
	NULLARY_XOR
)

const (
	UNARY_IMM UnaryOp = iota
	UNARY_REL
	UNARY_JMP
	UNARY_BZ
	UNARY_BNZ
	UNARY_ENT
	UNARY_ADJ
	UNARY_JSR

	// Software interrupt
	UNARY_INT
)

const (
	DIRECTIVE_ASCIZ = ".asciz"
	DIRECTIVE_ASCII = ".ascii"
	DIRECTIVE_DB    = ".db"
	DIRECTIVE_DW    = ".dw"
)

var NullaryOps = []NullaryOp{
	NULLARY_PSH, NULLARY_PUSHARG, NULLARY_LI, NULLARY_LC, NULLARY_SI,
	NULLARY_SC, NULLARY_SWAP, NULLARY_POP, NULLARY_RET,
	NULLARY_EQ, NULLARY_NE, NULLARY_LT, NULLARY_GT, NULLARY_LE, NULLARY_GE,
	NULLARY_ADD, NULLARY_SUB, NULLARY_MUL, NULLARY_DIV, NULLARY_MOD,
	NULLARY_AND, NULLARY_OR, NULLARY_XOR,
}

var UnaryOps = []UnaryOp{
	UNARY_IMM, UNARY_REL, UNARY_JMP, UNARY_BZ, UNARY_BNZ,
	UNARY_ENT, UNARY_ADJ, UNARY_JSR, UNARY_INT,
}

// Opcode returns the machine byte for op.
func (op NullaryOp) Opcode() byte {
	switch op {
	case NULLARY_PSH:
		return 0x10
	case NULLARY_PUSHARG:
		return 0x11
	case NULLARY_LI:
		return 0x12
	case NULLARY_LC:
		return 0x13
	case NULLARY_SI:
		return 0x14
	case NULLARY_SC:
		return 0x15
	case NULLARY_SWAP:
		return 0x16
	case NULLARY_POP:
		return 0x17
	case NULLARY_RET:
		return 0x18
	case NULLARY_EQ:
		return 0x20
	case NULLARY_NE:
		return 0x21
	case NULLARY_LT:
		return 0x22
	case NULLARY_GT:
		return 0x23
	case NULLARY_LE:
		return 0x24
	case NULLARY_GE:
		return 0x25
	case NULLARY_ADD:
		return 0x26
	case NULLARY_SUB:
		return 0x27
	case NULLARY_MUL:
		return 0x28
	case NULLARY_DIV:
		return 0x29
	case NULLARY_MOD:
		return 0x2A
	case NULLARY_AND:
		return 0x2B
	case NULLARY_OR:
		return 0x2C
	case NULLARY_XOR:
		return 0x2D
	}

	panic("invalid nullary operation")
}

func (op NullaryOp) String() string {
	switch op {
	case NULLARY_PSH:
		return "PSH"
	case NULLARY_PUSHARG:
		return "PUSHARG"
	case NULLARY_LI:
		return "LI"
	case NULLARY_LC:
		return "LC"
	case NULLARY_SI:
		return "SI"
	case NULLARY_SC:
		return "SC"
	case NULLARY_SWAP:
		return "SWAP"
	case NULLARY_POP:
		return "POP"
	case NULLARY_RET:
		return "RET"
	case NULLARY_EQ:
		return "EQ"
	case NULLARY_NE:
		return "NE"
	case NULLARY_LT:
		return "LT"
	case NULLARY_GT:
		return "GT"
	case NULLARY_LE:
		return "LE"
	case NULLARY_GE:
		return "GE"
	case NULLARY_ADD:
		return "ADD"
	case NULLARY_SUB:
		return "SUB"
	case NULLARY_MUL:
		return "MUL"
	case NULLARY_DIV:
		return "DIV"
	case NULLARY_MOD:
		return "MOD"
	case NULLARY_AND:
		return "AND"
	case NULLARY_OR:
		return "OR"
	case NULLARY_XOR:
		return "XOR"
	}

	return "<invalid>"
}

// Opcode returns the machine byte for op. The encoded form is followed by
// a 4-byte big-endian operand.
func (op UnaryOp) Opcode() byte {
	switch op {
	case UNARY_IMM:
		return 0x01
	case UNARY_REL:
		return 0x02
	case UNARY_JMP:
		return 0x03
	case UNARY_BZ:
		return 0x04
	case UNARY_BNZ:
		return 0x05
	case UNARY_ENT:
		return 0x06
	case UNARY_ADJ:
		return 0x07
	case UNARY_JSR:
		return 0x08
	case UNARY_INT:
		return 0x09
	}

	panic("invalid unary operation")
}

func (op UnaryOp) String() string {
	switch op {
	case UNARY_IMM:
		return "IMM"
	case UNARY_REL:
		return "REL"
	case UNARY_JMP:
		return "JMP"
	case UNARY_BZ:
		return "BZ"
	case UNARY_BNZ:
		return "BNZ"
	case UNARY_ENT:
		return "ENT"
	case UNARY_ADJ:
		return "ADJ"
	case UNARY_JSR:
		return "JSR"
	case UNARY_INT:
		return "INT"
	}

	return "<invalid>"
}

var nullaryMnemonics = make(map[string]NullaryOp)
var unaryMnemonics = make(map[string]UnaryOp)
var nullaryOpcodes = make(map[byte]NullaryOp)
var unaryOpcodes = make(map[byte]UnaryOp)

func init() {
	for _, op := range NullaryOps {
		nullaryMnemonics[op.String()] = op
		nullaryOpcodes[op.Opcode()] = op
	}

	for _, op := range UnaryOps {
		unaryMnemonics[op.String()] = op
		unaryOpcodes[op.Opcode()] = op
	}
}

// Mnemonics are case-sensitive and matched exactly.
func LookupNullary(mnemonic string) (NullaryOp, bool) {
	op, ok := nullaryMnemonics[mnemonic]
	return op, ok
}

func LookupUnary(mnemonic string) (UnaryOp, bool) {
	op, ok := unaryMnemonics[mnemonic]
	return op, ok
}

func LookupNullaryOpcode(opcode byte) (NullaryOp, bool) {
	op, ok := nullaryOpcodes[opcode]
	return op, ok
}

func LookupUnaryOpcode(opcode byte) (UnaryOp, bool) {
	op, ok := unaryOpcodes[opcode]
	return op, ok
}
