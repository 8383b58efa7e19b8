package commands

const (
	// DefaultHistoryLimit is how many entries `history list` shows.
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit caps `history search` results.
	DefaultHistorySearchLimit = 50
	// MaxHistoryAnalysisRecords bounds `history stats`.
	MaxHistoryAnalysisRecords = 1000
	topCommandCount           = 5
)

const (
	errDoctorFailed = "one or more checks failed"

	msgConfigurationValid       = "Configuration valid"
	msgNoDifferencesFromDefault = "No differences from default configuration."
	msgNoHistoryRecorded        = "No history recorded yet."
	msgNoCachedResponses        = "No cached responses."
)
