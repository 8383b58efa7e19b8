package domain

import "time"

// HistoryRecord captures one pipeline run that produced a command.
type HistoryRecord struct {
	Timestamp       time.Time   `json:"timestamp"`
	RunID           string      `json:"run_id"`
	Instruction     string      `json:"instruction"`
	Command         string      `json:"command"`
	Model           string      `json:"model"`
	Dialect         DialectName `json:"dialect"`
	Tier            string      `json:"tier"`
	Outcome         OutcomeKind `json:"outcome"`
	Executed        bool        `json:"executed"`
	Success         bool        `json:"success"`
	ExitCode        int         `json:"exit_code"`
	ExecutionTimeMS int64       `json:"execution_time_ms"`
}

// CacheEntry stores a raw model response addressed by prompt hash.
type CacheEntry struct {
	Key       string    `json:"key"`
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
