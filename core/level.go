package core

// Level specifies the severity stamped on a tap event.
type Level int

const (
	// VerboseLevel is the most detailed level.
	VerboseLevel Level = iota

	// DebugLevel is the default for tap events.
	DebugLevel

	// InformationLevel is for informational output.
	InformationLevel

	// WarningLevel is for values worth a warning.
	WarningLevel

	// ErrorLevel is for values observed on an error path.
	ErrorLevel
)

// String returns the full name of the level.
func (l Level) String() string {
	switch l {
	case VerboseLevel:
		return "Verbose"
	case DebugLevel:
		return "Debug"
	case InformationLevel:
		return "Information"
	case WarningLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	default:
		return "Unknown"
	}
}
