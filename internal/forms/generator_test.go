// internal/forms/generator_test.go
package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator() *Generator {
	g := NewGenerator()
	g.now = func() time.Time {
		return time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)
	}
	return g
}

func TestGenerator_FIRStructure(t *testing.T) {
	g := fixedGenerator()

	form, err := g.Generate("FIR", map[string]string{
		"name":     "Asha Rao",
		"location": "MG Road, Bengaluru",
	})
	require.NoError(t, err)

	assert.Contains(t, form, "First Information Report")
	assert.Contains(t, form, "Generated on: March 05, 2025 at 02:30 PM")
	assert.Contains(t, form, "--- Complainant Details ---")
	assert.Contains(t, form, "--- Incident Details ---")
	assert.Contains(t, form, "--- Accused Details ---")
	assert.Contains(t, form, "--- Witness Details ---")
	assert.Contains(t, form, "--- Evidence Details ---")
	assert.Contains(t, form, "Full Name: Asha Rao")
	assert.Contains(t, form, "Location of Incident: MG Road, Bengaluru")
	assert.Contains(t, form, "IMPORTANT NOTES:")
}

func TestGenerator_MissingResponsesRenderBlanks(t *testing.T) {
	g := fixedGenerator()

	form, err := g.Generate("RTI", nil)
	require.NoError(t, err)

	assert.Contains(t, form, "Subject of Information: _________________")
	assert.Contains(t, form, "Citizenship: _________________")
}

func TestGenerator_SharedKeyFillsEverySection(t *testing.T) {
	g := fixedGenerator()

	// FIR has a "name" field in both complainant and accused sections. The
	// flat response map fills both, matching the section rendering order.
	form, err := g.Generate("FIR", map[string]string{"name": "Same Name"})
	require.NoError(t, err)

	assert.Contains(t, form, "Full Name: Same Name")
	assert.Contains(t, form, "Name of Accused: Same Name")
}

func TestGenerator_UnknownFormType(t *testing.T) {
	g := fixedGenerator()

	_, err := g.Generate("AFFIDAVIT", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORM_TYPE_UNKNOWN")
}

func TestGenerator_AllTypesRender(t *testing.T) {
	g := fixedGenerator()

	titles := map[string]string{
		"FIR":       "First Information Report",
		"RTI":       "Right to Information Application",
		"COMPLAINT": "General Complaint Form",
		"APPEAL":    "Legal Appeal Application",
	}
	for _, formType := range Types() {
		form, err := g.Generate(formType, nil)
		require.NoError(t, err, formType)
		assert.Contains(t, form, titles[formType])
		assert.True(t, strings.HasPrefix(form, strings.Repeat("=", 80)))
	}
}

func TestGenerator_Fields(t *testing.T) {
	g := fixedGenerator()

	fields, err := g.Fields("RTI")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "address", "phone", "email", "citizenship"}, fields["applicant_details"])
	assert.Equal(t, []string{"subject", "details", "period", "format"}, fields["information_requested"])
	assert.Len(t, fields, 4)

	_, err = g.Fields("BOGUS")
	assert.Error(t, err)
}
