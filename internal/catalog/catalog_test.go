package catalog

import (
	"errors"
	"testing"

	"github.com/harborview-health/datalineage/pkg/core"
)

func rel(source, target string, fields ...string) core.Relationship {
	return core.Relationship{
		Source:          source,
		Target:          target,
		Type:            core.RelationshipPrimary,
		JoiningFields:   fields,
		DetectionMethod: core.DetectionStandard,
	}
}

func TestCatalog_AddAndAll(t *testing.T) {
	c := New()

	if err := c.Add(rel("demographics", "records", "patient_id")); err != nil {
		t.Fatalf("failed to add edge: %v", err)
	}
	if err := c.Add(rel("records", "labs", "record_id")); err != nil {
		t.Fatalf("failed to add edge: %v", err)
	}

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(all))
	}
	if all[0].Source != "demographics" || all[1].Source != "records" {
		t.Errorf("expected insertion order preserved, got %v", all)
	}
}

func TestCatalog_ReplaceKeepsPosition(t *testing.T) {
	c := New()

	_ = c.Add(rel("a", "b", "id"))
	_ = c.Add(rel("b", "c", "id"))

	// Re-declare a->b with different fields; it must replace, not append.
	replacement := rel("a", "b", "id", "code")
	if err := c.Add(replacement); err != nil {
		t.Fatalf("failed to replace edge: %v", err)
	}

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 edges after replacement, got %d", len(all))
	}
	if all[0].Source != "a" || len(all[0].JoiningFields) != 2 {
		t.Errorf("expected replaced edge first with 2 fields, got %v", all[0])
	}
}

func TestCatalog_OrderedPairsAreDistinct(t *testing.T) {
	c := New()

	// a->b and b->a are different edges; both must be stored.
	_ = c.Add(rel("a", "b", "id"))
	_ = c.Add(rel("b", "a", "id"))

	if c.Len() != 2 {
		t.Errorf("expected 2 edges for opposite directions, got %d", c.Len())
	}
}

func TestCatalog_Add_Validation(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		rel  core.Relationship
	}{
		{"missing source", core.Relationship{Target: "b", JoiningFields: []string{"id"}}},
		{"missing target", core.Relationship{Source: "a", JoiningFields: []string{"id"}}},
		{"no joining fields", core.Relationship{Source: "a", Target: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Add(tt.rel)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *core.ValidationError, got %T", err)
			}
		})
	}

	if c.Len() != 0 {
		t.Errorf("expected no edges after failed adds, got %d", c.Len())
	}
}

func TestCatalog_ForDataset(t *testing.T) {
	c := New()

	_ = c.Add(rel("demographics", "records", "patient_id"))
	_ = c.Add(rel("records", "labs", "record_id"))
	_ = c.Add(rel("staff", "audit_logs", "staff_id"))

	edges := c.ForDataset("records")
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges for records, got %d", len(edges))
	}
	if edges[0].Source != "demographics" || edges[1].Source != "records" {
		t.Errorf("expected insertion order, got %v", edges)
	}

	if got := c.ForDataset("nonexistent"); len(got) != 0 {
		t.Errorf("expected no edges for unknown dataset, got %v", got)
	}
}
