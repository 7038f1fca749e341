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

package encoding

import (
	"encoding/binary"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("Invalid hex string")
var ErrInvalidInt = errors.New("Invalid decimal string")

// Decodes a hexadecimal string in the format 0xFFFFFFFF
func DecodeHex(s string) (uint32, error) {
	if !strings.HasPrefix(s, "0x") || len(s) == 2 {
		return 0, ErrInvalidHex
	}

	result, err := strconv.ParseUint(s[2:], 16, 32)

	if err != nil {
		return 0, err
	}

	return uint32(result), nil
}

// Decodes an unsigned base-10 string
func DecodeInt(s string) (uint32, error) {
	if len(s) == 0 || s[0] < '0' || s[0] > '9' {
		return 0, ErrInvalidInt
	}

	result, err := strconv.ParseUint(s, 10, 32)

	if err != nil {
		return 0, err
	}

	return uint32(result), nil
}

// Decodes either literal form, negating the magnitude when negative is set.
func DecodeLiteral(s string, negative bool) (uint32, error) {
	var result uint32
	var err error

	if strings.HasPrefix(s, "0x") {
		result, err = DecodeHex(s)
	} else {
		result, err = DecodeInt(s)
	}

	if err != nil {
		return 0, err
	}

	if negative {
		result = Negate(result)
	}

	return result, nil
}

// Two's complement negation within 32 bits
func Negate(value uint32) uint32 {
	return ^value + 1
}

func SplitWord(value uint32) [4]byte {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], value)
	return word
}

func JoinWord(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}
