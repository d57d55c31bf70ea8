package datasource

import (
	"fmt"

	"github.com/skyeng-labs/skygraph/pkg/debug"
	"github.com/skyeng-labs/skygraph/pkg/model"
)

// Result is a loaded graph plus where it came from and any integrity
// warnings collected while decoding.
type Result struct {
	Graph    *model.Graph
	Source   DataSource
	Warnings []string
}

// Load resolves path (file or directory) to the freshest valid source and
// loads the graph from it. Integrity problems inside an otherwise loadable
// source degrade to warnings, matching the renderer's skip-don't-crash
// policy for malformed edges.
func Load(path string) (*Result, error) {
	sources, err := DiscoverSources(path)
	if err != nil {
		return nil, err
	}
	ValidateSources(sources)
	best, err := SelectBest(sources)
	if err != nil {
		return nil, err
	}
	debug.Log("selected source: %s", best)

	return LoadSource(best)
}

// LoadSource loads the graph from one specific source.
func LoadSource(src DataSource) (*Result, error) {
	switch src.Type {
	case SourceTypeJSON:
		g, warnings, err := model.LoadPayloadFile(src.Path)
		if err != nil {
			return nil, err
		}
		return &Result{Graph: g, Source: src, Warnings: warnings}, nil

	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(src)
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		g, warnings, err := reader.LoadLatestGraph()
		if err != nil {
			return nil, err
		}
		return &Result{Graph: g, Source: src, Warnings: warnings}, nil

	default:
		return nil, fmt.Errorf("unknown source type %q", src.Type)
	}
}
