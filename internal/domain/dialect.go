package domain

// DialectName identifies a target shell command syntax family.
type DialectName string

const (
	DialectPOSIX   DialectName = "posix"
	DialectWindows DialectName = "windows"
)
