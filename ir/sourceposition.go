package ir

import "strconv"

// SourceFile is the Scala source file containing a SourcePosition. Positions
// with no physical location (e.g. synthesized code) use the virtual file
// returned by VirtualSourceFile; the zero value is not virtual.
type SourceFile struct {
	IsVirtual bool
	Path      string
}

// VirtualSourceFile returns the virtual source file.
func VirtualSourceFile() SourceFile { return SourceFile{IsVirtual: true} }

func (f SourceFile) String() string {
	if f.IsVirtual {
		return "<virtual>"
	}
	return f.Path
}

// SourcePosition locates a single, 0-indexed point within a SourceFile.
type SourcePosition struct {
	File   SourceFile
	Line   uint64
	Column uint64
}

func (p SourcePosition) String() string {
	return p.File.String() + ":" + strconv.FormatUint(p.Line+1, 10) + ":" + strconv.FormatUint(p.Column+1, 10)
}
