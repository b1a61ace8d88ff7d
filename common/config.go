package common

const EnableDebug bool = false //true

// LogLevelSetting is the mask ShPrintf filters against.
// widen it (e.g. | DEBUG_INFO | DEBUG_INFO_DETAIL) to trace join strategy selection and spills
var LogLevelSetting = WARN | ERROR | FATAL //| INFO | DEBUG_INFO | DEBUG_INFO_DETAIL

const (
	// memory limit used by drivers which do not specify one for a join (number of records)
	DefaultJoinMemoryLimit = 100
	// I/O buffer size of temporary files and initial capacity of memory backed ones
	TmpFileInitialCapacity = 4096
	// longest line of a table data file in bytes
	MaxDataFileLineSize = 16 * 1024 * 1024
	// directory of join spill files. empty means the default directory for temporary files
	TmpFileDir = ""
	// delimiter of qualified column names. e.g. "table1.column1"
	QualifiedNameDelimiter = "."
)
