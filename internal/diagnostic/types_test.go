package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_ErrorAndString(t *testing.T) {
	d := &Diagnostics{}
	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddWarning("incomplete_mapping", "source is empty", "mappings", "")
	assert.True(t, d.IsValid())

	d.AddError("duplicate_destination", `destination "a.b" used twice`, "mappings", "a.b")
	d.AddError("invalid_range", "start must be lower than end", "fields", "age")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	assert.Equal(t, []string{"duplicate_destination", "invalid_range"}, d.Codes())

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t,
		`[mappings] a.b: [duplicate_destination] destination "a.b" used twice; `+
			`[fields] age: [invalid_range] start must be lower than end`,
		err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	a := &Diagnostics{}
	a.AddInfo("note", "n", "", "")

	b := Diagnostics{}
	b.AddError("e", "boom", "", "")
	b.AddWarning("w", "careful", "", "")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)
	assert.Equal(t, "boom", all[0].String())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
