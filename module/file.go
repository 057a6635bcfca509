// Package module loads a complete NIR file: its header, and the sequence
// of definitions that follow it.
package module

import (
	"fmt"
	"os"

	"github.com/kyouko-taiga/nirc/bytesource"
	"github.com/kyouko-taiga/nirc/decode"
	"github.com/kyouko-taiga/nirc/ir"
)

// fileIdentifier is the 32-bit big-endian value a NIR file's first four
// bytes must decode to.
const fileIdentifier int32 = 0x2e4e4952

// Header is the header of a serialized NIR file.
type Header struct {
	// CompatibilityLevel is the file's major version number.
	CompatibilityLevel int32

	// Revision is the file's minor version number.
	Revision int32

	// HasEntryPoints reports whether the file declares entry points. Every
	// released version of the format sets this unconditionally.
	HasEntryPoints bool
}

func decodeHeader(source *bytesource.Source) (Header, error) {
	magic, err := source.I32()
	if err != nil {
		return Header{}, err
	}
	if int32(magic) != fileIdentifier {
		return Header{}, fmt.Errorf("invalid file format")
	}

	major, err := source.I32()
	if err != nil {
		return Header{}, err
	}
	minor, err := source.I32()
	if err != nil {
		return Header{}, err
	}

	return Header{CompatibilityLevel: major, Revision: minor, HasEntryPoints: true}, nil
}

// File is a complete, decoded NIR file.
type File struct {
	Header      Header
	Definitions []ir.Definition
}

// Load reads and decodes the NIR file at path.
func Load(path string) (*File, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(contents)
}

// Decode decodes a complete NIR file from contents.
func Decode(contents []byte) (*File, error) {
	source := bytesource.New(contents)

	source.ByteOrder = bytesource.BigEndian
	header, err := decodeHeader(source)
	if err != nil {
		return nil, err
	}

	source.ByteOrder = bytesource.LittleEndian
	deserializer := decode.New(source)

	var definitions []ir.Definition
	for !source.IsEmpty() {
		d, err := deserializer.Definition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, d)
	}

	return &File{Header: header, Definitions: definitions}, nil
}
