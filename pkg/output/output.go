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

// Package output converts an assembled Blob to and from its JSON form.
package output

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cassiebeckley/sembler/pkg/assembler"
)

var ErrNotOK = errors.New("result is not marked ok")

type Result struct {
	OK         bool   `json:"ok"`
	BSS        string `json:"bss"`
	Raw        string `json:"raw"`
	EntryPoint uint32 `json:"ep"`
}

func Encode(blob *assembler.Blob) Result {
	return Result{
		OK:         true,
		BSS:        base64.StdEncoding.EncodeToString(blob.BSS),
		Raw:        base64.StdEncoding.EncodeToString(blob.Raw),
		EntryPoint: blob.EntryPoint,
	}
}

// Write serialises result followed by a newline, indented when pretty is set.
func Write(w io.Writer, result Result, pretty bool) error {
	encoder := json.NewEncoder(w)

	if pretty {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(result)
}

func Decode(r io.Reader) (*assembler.Blob, error) {
	var result Result
	var blob assembler.Blob
	var err error

	if err = json.NewDecoder(r).Decode(&result); err != nil {
		return nil, err
	}

	if !result.OK {
		return nil, ErrNotOK
	}

	if blob.BSS, err = base64.StdEncoding.DecodeString(result.BSS); err != nil {
		return nil, fmt.Errorf("bss: %w", err)
	}

	if blob.Raw, err = base64.StdEncoding.DecodeString(result.Raw); err != nil {
		return nil, fmt.Errorf("raw: %w", err)
	}

	blob.EntryPoint = result.EntryPoint

	return &blob, nil
}
