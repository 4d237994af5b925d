package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddInfo("unresolved_attribute", "dropped", "Ns.Foo", "EnableCopyFrom")
	d.AddError("unknown_base_type", `base type "Missing" not found`, "Ns.Foo", "")
	d.WithSource("types.yaml")

	require.False(t, d.IsValid())
	assert.EqualError(t, d.Error(), `types.yaml: [Ns.Foo]: [unknown_base_type] base type "Missing" not found`)
	assert.Equal(t, "types.yaml: [Ns.Foo] EnableCopyFrom: [unresolved_attribute] dropped", d.Infos[0].String())
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	var a, b Diagnostics
	a.AddWarning("w", "warn", "", "")
	b.AddError("e", "err", "", "")
	b.AddInfo("i", "info", "", "")
	a.Merge(b)

	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, DiagnosticError, all[0].Severity)
	assert.Equal(t, DiagnosticWarning, all[1].Severity)
	assert.Equal(t, DiagnosticInfo, all[2].Severity)
	assert.Equal(t, "warning", all[1].Severity.String())
}
