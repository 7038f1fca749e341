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

package parser

import (
	"fmt"
)

// Longest source line carried as error context
const MaxContext = 80

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

type TokenError interface {
	GetPosition() Cursor
}

// ParseError is returned for every grammar mismatch. Context holds the
// source line containing the failure, or is empty when that line is not
// valid UTF-8.
type ParseError struct {
	Position Cursor
	Message  string
	Context  string
}

func (err *ParseError) GetPosition() Cursor {
	return err.Position
}

func (err *ParseError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: %s",
		err.Position.Line,
		err.Position.Column,
		err.Message,
	)
}
