package reporter_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopydoclint/pkg/reporter"
)

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{
		Format:      reporter.FormatSARIF,
		WorkingDir:  workDir,
		ToolVersion: "1.2.3",
	}, sampleResult())
	assert.Equal(t, 1, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]

	assert.Equal(t, "gopydoclint", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)
	assert.Equal(t, "file:///work/", run.OriginalURIBaseIDs["SRCROOT"].URI)

	require.Len(t, run.Tool.Driver.Rules, 1)
	assert.Equal(t, "D400", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "warning", run.Tool.Driver.Rules[0].DefaultConfig.Level)

	require.Len(t, run.Results, 1)
	result := run.Results[0]
	assert.Equal(t, "warning", result.Level)

	require.Len(t, result.Locations, 1)
	physical := result.Locations[0].PhysicalLocation
	assert.Equal(t, reporter.SARIFArtifactLocation{URI: "pkg/mod.py", URIBaseID: "SRCROOT"}, physical.ArtifactLocation)
	assert.Equal(t, 2, physical.Region.StartLine)
	assert.Equal(t, 5, physical.Region.StartColumn)
	assert.Equal(t, []reporter.SARIFLogicalLocation{{FullyQualifiedName: "run", Kind: "member"}}, result.Locations[0].LogicalLocations)

	require.Len(t, result.Fixes, 1)
	assert.Equal(t, "Add a period", result.Fixes[0].Description.Text)
	require.Len(t, result.Fixes[0].ArtifactChanges, 1)
	replacements := result.Fixes[0].ArtifactChanges[0].Replacements
	require.Len(t, replacements, 1)

	deleted := replacements[0].DeletedRegion
	require.NotNil(t, deleted.ByteOffset)
	require.NotNil(t, deleted.ByteLength)
	assert.Equal(t, closeQuotes, *deleted.ByteOffset)
	assert.Equal(t, 0, *deleted.ByteLength)
	assert.Equal(t, 2, deleted.StartLine)
	assert.Equal(t, 14, deleted.StartColumn)
	assert.Equal(t, ".", replacements[0].InsertedContent.Text)
}

func TestSARIFReporter_Empty(t *testing.T) {
	t.Parallel()

	out, count := report(t, reporter.Options{Format: reporter.FormatSARIF}, nil)
	assert.Equal(t, 0, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Runs, 1)
	assert.Empty(t, doc.Runs[0].Results)
	assert.Empty(t, doc.Runs[0].OriginalURIBaseIDs)
	assert.Equal(t, "dev", doc.Runs[0].Tool.Driver.Version)
}
