package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Geometry errors
	InvalidGeometryError
	ProjectionError
	AreaFileError

	// Species input errors
	SpeciesFileError
	MissingColumnError

	// GBIF client errors
	SearchFailedError
	BadSearchQueryError

	// Trait resolver errors
	TraitCacheError

	// Analysis errors
	AnalysisInterruptedError

	// Export errors
	ExportError
)
