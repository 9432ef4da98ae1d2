// Package model defines the data structures shared by the onelevel layers.
package model

// Path represents a file system path.
type Path string

// File represents a source code file on disk.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}

// Source is a discovered Java source file ready for evaluation.
type Source struct {
	Origin *File
}

// SourceInfo describes a discovered source without evaluating it.
type SourceInfo struct {
	Path     Path
	Hash     string
	TypeName string
	Methods  int
	// Status is empty when the file parsed, otherwise skipped or error.
	Status Status
	Error  string
}
