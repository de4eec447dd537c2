package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview-health/datalineage/pkg/core"
)

func TestNewDetectCommand(t *testing.T) {
	cmd := NewDetectCommand()

	assert.Equal(t, "detect", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewGraphCommand(t *testing.T) {
	cmd := NewGraphCommand()

	assert.Equal(t, "graph", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("mermaid"), "flag %q should exist", "mermaid")
}

func TestNewImpactCommand(t *testing.T) {
	cmd := NewImpactCommand()

	assert.Equal(t, "impact <dataset>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewReportCommand(t *testing.T) {
	cmd := NewReportCommand()

	assert.Equal(t, "report", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"watch", "no-save"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewRunsCommand(t *testing.T) {
	cmd := NewRunsCommand()

	assert.Equal(t, "runs", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"limit", "show"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewFlowCommand(t *testing.T) {
	cmd := NewFlowCommand()

	assert.Equal(t, "flow <audit-log.csv>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestVersionCommand_Output(t *testing.T) {
	cmd := NewVersionCommand("9.9.9")

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "datalineage v9.9.9")
}

func TestFormatPath(t *testing.T) {
	downstream := []core.Relationship{
		{Source: "demographics", Target: "records"},
		{Source: "records", Target: "labs"},
	}
	assert.Equal(t, "demographics -> records -> labs", formatPath("demographics", downstream))

	// Upstream paths carry the edges in their stored direction; the walk
	// still starts at the origin.
	upstream := []core.Relationship{
		{Source: "records", Target: "labs"},
		{Source: "demographics", Target: "records"},
	}
	assert.Equal(t, "labs -> records -> demographics", formatPath("labs", upstream))

	assert.Equal(t, "solo", formatPath("solo", nil))
}

func TestRenderRelationshipTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderRelationshipTable(&buf, nil)
	assert.Contains(t, buf.String(), "(no relationships)")
}
