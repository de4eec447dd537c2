// Package flow analyzes data-access audit logs to describe how governed
// datasets actually move through the organization: access volume per
// resource type, the most active staff, temporal access patterns, and
// recurring access-path sequences.
package flow

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timestampLayouts are accepted audit-log timestamp formats, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Event is one access event from the audit log.
type Event struct {
	Timestamp    time.Time
	StaffID      string
	StaffName    string
	Action       string
	ResourceType string
}

// AccessStats holds a count and its share of total events.
type AccessStats struct {
	AccessCount int     `json:"access_count"`
	Percentage  float64 `json:"percentage"`
}

// StaffStats holds per-staff access statistics.
type StaffStats struct {
	StaffName   string  `json:"staff_name"`
	AccessCount int     `json:"access_count"`
	Percentage  float64 `json:"percentage"`
}

// AccessPath is a recurring action:resource sequence across the logs.
type AccessPath struct {
	Path      []string `json:"path"`
	Frequency int      `json:"frequency"`
}

// Analysis is the data-flow analysis document for one audit log.
type Analysis struct {
	AnalysisID        string                 `json:"analysis_id"`
	AnalysisDate      time.Time              `json:"analysis_date"`
	FileAnalyzed      string                 `json:"file_analyzed"`
	TotalAccessEvents int                    `json:"total_access_events"`
	ResourceTypes     map[string]AccessStats `json:"resource_types"`
	StaffAccess       map[string]StaffStats  `json:"staff_access"`
	TemporalPatterns  map[int]AccessStats    `json:"temporal_patterns"`
	AccessPaths       []AccessPath           `json:"access_paths"`
}

// Subsequence lengths examined when mining access paths.
var pathLengths = []int{2, 3, 4}

const (
	topStaffLimit = 10
	topPathLimit  = 10
)

// AnalyzeFile loads an audit-log CSV and analyzes it.
func AnalyzeFile(path string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() { _ = f.Close() }()

	events, err := ReadEvents(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log %s: %w", path, err)
	}

	analysis := Analyze(events)
	analysis.FileAnalyzed = filepath.Base(path)
	return analysis, nil
}

// ReadEvents parses audit events from CSV. The header row names the
// columns; timestamp, staff_id, action and resource_type are required,
// staff_name is optional.
func ReadEvents(r io.Reader) ([]Event, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"timestamp", "staff_id", "action", "resource_type"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("audit log missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var events []Event
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		ts, err := parseTimestamp(field(record, "timestamp"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		events = append(events, Event{
			Timestamp:    ts,
			StaffID:      field(record, "staff_id"),
			StaffName:    field(record, "staff_name"),
			Action:       field(record, "action"),
			ResourceType: field(record, "resource_type"),
		})
	}

	return events, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// Analyze computes the data-flow analysis over a set of audit events.
// Output ordering is deterministic: counts descending, keys ascending on
// ties.
func Analyze(events []Event) *Analysis {
	analysis := &Analysis{
		AnalysisID:        uuid.NewString(),
		AnalysisDate:      time.Now().UTC(),
		TotalAccessEvents: len(events),
		ResourceTypes:     make(map[string]AccessStats),
		StaffAccess:       make(map[string]StaffStats),
		TemporalPatterns:  make(map[int]AccessStats),
	}
	if len(events) == 0 {
		return analysis
	}

	total := float64(len(events))
	percentage := func(count int) float64 {
		return float64(count) / total * 100
	}

	// Access by resource type.
	resourceCounts := make(map[string]int)
	for _, ev := range events {
		resourceCounts[ev.ResourceType]++
	}
	for resource, count := range resourceCounts {
		analysis.ResourceTypes[resource] = AccessStats{
			AccessCount: count,
			Percentage:  percentage(count),
		}
	}

	// Top staff by access count.
	staffCounts := make(map[string]int)
	staffNames := make(map[string]string)
	for _, ev := range events {
		staffCounts[ev.StaffID]++
		if ev.StaffName != "" {
			staffNames[ev.StaffID] = ev.StaffName
		}
	}
	for _, id := range topKeys(staffCounts, topStaffLimit) {
		analysis.StaffAccess[id] = StaffStats{
			StaffName:   staffNames[id],
			AccessCount: staffCounts[id],
			Percentage:  percentage(staffCounts[id]),
		}
	}

	// Access by hour of day.
	hourCounts := make(map[int]int)
	for _, ev := range events {
		hourCounts[ev.Timestamp.Hour()]++
	}
	for hour, count := range hourCounts {
		analysis.TemporalPatterns[hour] = AccessStats{
			AccessCount: count,
			Percentage:  percentage(count),
		}
	}

	analysis.AccessPaths = minePaths(events)
	return analysis
}

// minePaths finds the most frequent action:resource subsequences per staff
// member, ordered by event time within each staff sequence.
func minePaths(events []Event) []AccessPath {
	byStaff := make(map[string][]Event)
	for _, ev := range events {
		byStaff[ev.StaffID] = append(byStaff[ev.StaffID], ev)
	}

	pathCounts := make(map[string]int)
	for _, staffEvents := range byStaff {
		sort.SliceStable(staffEvents, func(i, j int) bool {
			return staffEvents[i].Timestamp.Before(staffEvents[j].Timestamp)
		})

		sequence := make([]string, len(staffEvents))
		for i, ev := range staffEvents {
			sequence[i] = ev.Action + ":" + ev.ResourceType
		}

		for _, length := range pathLengths {
			for i := 0; i+length <= len(sequence); i++ {
				key := strings.Join(sequence[i:i+length], "\x00")
				pathCounts[key]++
			}
		}
	}

	var paths []AccessPath
	for _, key := range topKeys(pathCounts, topPathLimit) {
		paths = append(paths, AccessPath{
			Path:      strings.Split(key, "\x00"),
			Frequency: pathCounts[key],
		})
	}
	return paths
}

// topKeys returns up to limit keys ordered by count descending, then key
// ascending.
func topKeys(counts map[string]int, limit int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}
