// Package harness runs YAML-defined store scenarios end to end and
// compares the resulting JSON export against golden files.
//
// A scenario is a flat list of store operations applied to a fresh
// database driven by a fixed clock and sequential guids, so the export is
// deterministic and byte-comparable across runs.
package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/bmconv/internal/bridge"
	"github.com/roach88/bmconv/internal/jsontree"
	"github.com/roach88/bmconv/internal/store"
	"github.com/roach88/bmconv/internal/testutil"
)

// Scenario defines one golden-file scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Steps contains the store operations to apply in order.
	Steps []Step `yaml:"steps"`
}

// Step is one store operation. Supported ops: add_folder, add_url,
// update, delete. For update, empty fields are left untouched.
type Step struct {
	Op       string `yaml:"op"`
	Name     string `yaml:"name"`
	Parent   string `yaml:"parent,omitempty"`
	URL      string `yaml:"url,omitempty"`
	Icon     string `yaml:"icon,omitempty"`
	Keywords string `yaml:"keywords,omitempty"`
	NewName  string `yaml:"new_name,omitempty"`
}

// LoadScenario reads one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return &sc, nil
}

// Run executes the scenario against a fresh store and returns the JSON
// export of the resulting tree.
func Run(t *testing.T, sc *Scenario) []byte {
	t.Helper()
	ctx := context.Background()

	st, err := store.Create(
		filepath.Join(t.TempDir(), "scenario.sqlite3"),
		store.WithClock(testutil.FixedClock{T: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}),
		store.WithGUIDSource(&testutil.SeqGUIDs{}),
	)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	for i, step := range sc.Steps {
		if err := apply(ctx, st, step); err != nil {
			t.Fatalf("scenario %s step %d (%s %s): %v", sc.Name, i, step.Op, step.Name, err)
		}
	}

	tree, err := bridge.Export(ctx, st)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var buf bytes.Buffer
	if err := jsontree.Write(&buf, tree); err != nil {
		t.Fatalf("serialize export: %v", err)
	}
	return buf.Bytes()
}

func apply(ctx context.Context, st *store.Store, step Step) error {
	switch step.Op {
	case "add_folder":
		_, err := st.AddNode(ctx, store.NodeAttrs{Name: step.Name, ParentName: step.Parent}, true)
		return err
	case "add_url":
		attrs := store.NodeAttrs{
			Name:       step.Name,
			ParentName: step.Parent,
			URL:        step.URL,
			Icon:       step.Icon,
			Keywords:   step.Keywords,
		}
		_, err := st.AddNode(ctx, attrs, false)
		return err
	case "update":
		patch := store.NodePatch{}
		if step.NewName != "" {
			patch.Name = &step.NewName
		}
		if step.URL != "" {
			patch.URL = &step.URL
		}
		if step.Icon != "" {
			patch.Icon = &step.Icon
		}
		if step.Keywords != "" {
			patch.Keywords = &step.Keywords
		}
		return st.UpdateNode(ctx, step.Name, patch)
	case "delete":
		return st.DeleteNode(ctx, step.Name)
	}
	return fmt.Errorf("unknown op %q", step.Op)
}
