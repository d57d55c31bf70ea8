// Package datasource resolves where the current compliance graph comes
// from. It discovers, validates, and selects the freshest valid source for
// a path: either a JSON graph payload exported by the assessment backend or
// a SQLite assessment database.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SourceType identifies the type of data source.
type SourceType string

const (
	// SourceTypeJSON is a graph payload file ({nodes, edges} JSON).
	SourceTypeJSON SourceType = "json"
	// SourceTypeSQLite is an assessment database (assessments.db).
	SourceTypeSQLite SourceType = "sqlite"
)

// Priority values for source types (higher = more authoritative).
const (
	PrioritySQLite = 100
	PriorityJSON   = 50
)

// DataSource represents a potential source of graph data.
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path"`
	Priority int        `json:"priority"`
	ModTime  time.Time  `json:"mod_time"`
	Valid    bool       `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// NodeCount is the number of nodes in the source (set during validation)
	NodeCount int   `json:"node_count"`
	Size      int64 `json:"size"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, nodes=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.NodeCount, status)
}

// DiscoverSources finds potential graph sources at path. A file path yields
// exactly one candidate; a directory is scanned for payload files (*.json)
// and assessment databases (*.db).
func DiscoverSources(path string) ([]DataSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		src, err := classify(path, info)
		if err != nil {
			return nil, err
		}
		return []DataSource{src}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", path, err)
	}

	var sources []DataSource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		src, err := classify(filepath.Join(path, e.Name()), fi)
		if err != nil {
			continue // unrecognized extension
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no graph payload (*.json) or assessment database (*.db) found in %s", path)
	}
	return sources, nil
}

func classify(path string, info os.FileInfo) (DataSource, error) {
	src := DataSource{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		src.Type = SourceTypeJSON
		src.Priority = PriorityJSON
	case ".db", ".sqlite", ".sqlite3":
		src.Type = SourceTypeSQLite
		src.Priority = PrioritySQLite
	default:
		return src, fmt.Errorf("unrecognized source extension: %s", path)
	}
	return src, nil
}

// ValidateSources checks every source concurrently and fills in Valid,
// ValidationError and NodeCount. The input slice is modified in place.
func ValidateSources(sources []DataSource) {
	var g errgroup.Group
	for i := range sources {
		g.Go(func() error {
			validate(&sources[i])
			return nil
		})
	}
	g.Wait() // workers never return errors; results live in the slice
}

func validate(src *DataSource) {
	switch src.Type {
	case SourceTypeJSON:
		n, err := validateJSON(src.Path)
		if err != nil {
			src.ValidationError = err.Error()
			return
		}
		src.Valid = true
		src.NodeCount = n
	case SourceTypeSQLite:
		n, err := validateSQLite(src.Path)
		if err != nil {
			src.ValidationError = err.Error()
			return
		}
		src.Valid = true
		src.NodeCount = n
	default:
		src.ValidationError = fmt.Sprintf("unknown source type %q", src.Type)
	}
}

// SelectBest picks the freshest valid source, breaking timestamp ties by
// priority (SQLite over JSON) then by path for determinism.
func SelectBest(sources []DataSource) (DataSource, error) {
	valid := make([]DataSource, 0, len(sources))
	for _, s := range sources {
		if s.Valid {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		var reasons []string
		for _, s := range sources {
			reasons = append(reasons, s.String())
		}
		return DataSource{}, fmt.Errorf("no valid graph source:\n  %s", strings.Join(reasons, "\n  "))
	}

	sort.Slice(valid, func(i, j int) bool {
		if !valid[i].ModTime.Equal(valid[j].ModTime) {
			return valid[i].ModTime.After(valid[j].ModTime)
		}
		if valid[i].Priority != valid[j].Priority {
			return valid[i].Priority > valid[j].Priority
		}
		return valid[i].Path < valid[j].Path
	})
	return valid[0], nil
}
