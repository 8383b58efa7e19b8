package helpers

import (
	"sort"

	"github.com/doeshing/ganpi-go/internal/domain"
)

// CommandStatistic represents usage statistics for a command
type CommandStatistic struct {
	Command string
	Count   int
}

// HistoryStatistics summarizes a slice of history records.
type HistoryStatistics struct {
	Total       int
	Executed    int
	Successful  int
	TopCommands []CommandStatistic
	ByTier      map[string]int
	ByOutcome   map[domain.OutcomeKind]int
}

// AnalyzeHistory aggregates records; top lists at most topN commands.
func AnalyzeHistory(records []domain.HistoryRecord, topN int) HistoryStatistics {
	stats := HistoryStatistics{
		Total:     len(records),
		ByTier:    make(map[string]int),
		ByOutcome: make(map[domain.OutcomeKind]int),
	}
	freq := make(map[string]int)
	for _, rec := range records {
		if rec.Executed {
			stats.Executed++
			if rec.Success {
				stats.Successful++
			}
		}
		freq[rec.Command]++
		stats.ByTier[rec.Tier]++
		stats.ByOutcome[rec.Outcome]++
	}
	stats.TopCommands = CalculateTopCommands(freq, topN)
	return stats
}

// SuccessRate is the percentage of executed commands that exited 0.
func (s HistoryStatistics) SuccessRate() float64 {
	return CalculateSuccessRate(s.Successful, s.Executed)
}

// CalculateTopCommands returns the top N most frequently used commands
// If limit is 0 or negative, returns all commands
func CalculateTopCommands(commandFrequency map[string]int, limit int) []CommandStatistic {
	stats := make([]CommandStatistic, 0, len(commandFrequency))
	for cmd, count := range commandFrequency {
		stats = append(stats, CommandStatistic{Command: cmd, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Command < stats[j].Command
		}
		return stats[i].Count > stats[j].Count
	})
	if limit > 0 && len(stats) > limit {
		return stats[:limit]
	}
	return stats
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, executedCount int) float64 {
	if executedCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(executedCount) * 100.0
}
