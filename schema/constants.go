package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// StopReason represents why truncation ended a series.
	StopReason string

	// LabelStrategy represents how a legend label is derived from an input file.
	LabelStrategy string

	// ImageFormat represents the file format of a rendered chart.
	ImageFormat string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// TimestampLayout is the fixed layout of every timestamp key in a result file.
const TimestampLayout = "2006-01-02 15:04:05"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All stop reasons reported by truncation.
const (
	StopEnd        StopReason = "end"         // every sample was kept
	StopZeroStreak StopReason = "zero-streak" // trailing idle tail removed
	StopTimeCap    StopReason = "time-cap"    // elapsed-minutes ceiling reached
)

// All label strategies supported.
const (
	LabelByEngine LabelStrategy = "engine" // default
	LabelByVU     LabelStrategy = "vu"
	LabelByFile   LabelStrategy = "file"
)

// All image formats supported.
const (
	PNGImage ImageFormat = "png" // default
	SVGImage ImageFormat = "svg"
	PDFImage ImageFormat = "pdf"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// DefaultSeriesKeys are the top-level keys recognized in a result file, in priority order.
var DefaultSeriesKeys = []string{"MySQL tpm", "PostgreSQL tpm"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidLabelStrategies lists all valid label strategies.
var ValidLabelStrategies = map[LabelStrategy]struct{}{
	LabelByEngine: {},
	LabelByVU:     {},
	LabelByFile:   {},
}

// ValidImageFormats lists all valid image formats.
var ValidImageFormats = map[ImageFormat]struct{}{
	PNGImage: {},
	SVGImage: {},
	PDFImage: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
