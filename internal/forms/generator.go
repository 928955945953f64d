// internal/forms/generator.go
package forms

import (
	"fmt"
	"strings"
	"time"

	commonerrors "nyaysetu/internal/common/errors"
)

// formTemplate describes one legal form type as an ordered list of sections.
type formTemplate struct {
	Title    string
	Sections []string
}

// sectionField is a labeled entry within a form section. Order matters for
// rendering, so sections are slices rather than maps.
type sectionField struct {
	Key   string
	Label string
}

var formTemplates = map[string]formTemplate{
	"FIR": {
		Title: "First Information Report",
		Sections: []string{
			"complainant_details",
			"incident_details",
			"accused_details",
			"witness_details",
			"evidence_details",
		},
	},
	"RTI": {
		Title: "Right to Information Application",
		Sections: []string{
			"applicant_details",
			"information_requested",
			"public_authority",
			"grounds_for_request",
		},
	},
	"COMPLAINT": {
		Title: "General Complaint Form",
		Sections: []string{
			"complainant_details",
			"complaint_details",
			"relief_sought",
			"supporting_documents",
		},
	},
	"APPEAL": {
		Title: "Legal Appeal Application",
		Sections: []string{
			"appellant_details",
			"original_order_details",
			"grounds_for_appeal",
			"relief_sought",
		},
	},
}

var sectionTemplates = map[string][]sectionField{
	"complainant_details": {
		{"name", "Full Name"},
		{"address", "Complete Address"},
		{"phone", "Phone Number"},
		{"email", "Email Address"},
		{"id_proof", "ID Proof Type and Number"},
	},
	"incident_details": {
		{"date_time", "Date and Time of Incident"},
		{"location", "Location of Incident"},
		{"description", "Detailed Description of Incident"},
		{"loss_damage", "Loss or Damage Suffered"},
	},
	"accused_details": {
		{"name", "Name of Accused"},
		{"address", "Address of Accused"},
		{"description", "Description of Accused"},
	},
	"witness_details": {
		{"witness_names", "Names of Witnesses"},
		{"witness_addresses", "Addresses of Witnesses"},
		{"witness_phones", "Phone Numbers of Witnesses"},
	},
	"evidence_details": {
		{"documents", "Supporting Documents"},
		{"physical_evidence", "Physical Evidence"},
		{"digital_evidence", "Digital Evidence"},
	},
	"applicant_details": {
		{"name", "Full Name"},
		{"address", "Complete Address"},
		{"phone", "Phone Number"},
		{"email", "Email Address"},
		{"citizenship", "Citizenship"},
	},
	"information_requested": {
		{"subject", "Subject of Information"},
		{"details", "Detailed Description of Information Required"},
		{"period", "Time Period for Information"},
		{"format", "Preferred Format of Information"},
	},
	"public_authority": {
		{"authority_name", "Name of Public Authority"},
		{"officer_name", "Name of Public Information Officer"},
		{"address", "Address of Public Authority"},
	},
	"grounds_for_request": {
		{"reason", "Reason for Requesting Information"},
		{"public_interest", "Public Interest Justification"},
	},
	"complaint_details": {
		{"subject", "Subject of Complaint"},
		{"description", "Detailed Description of Complaint"},
		{"date_occurred", "Date When Issue Occurred"},
		{"previous_actions", "Previous Actions Taken"},
	},
	"relief_sought": {
		{"compensation", "Compensation Sought"},
		{"action_required", "Action Required from Authority"},
		{"timeframe", "Expected Timeframe for Resolution"},
	},
	"supporting_documents": {
		{"documents", "List of Supporting Documents"},
		{"photographs", "Photographs (if any)"},
		{"correspondence", "Previous Correspondence"},
	},
	"appellant_details": {
		{"name", "Full Name of Appellant"},
		{"address", "Complete Address"},
		{"phone", "Phone Number"},
		{"email", "Email Address"},
		{"representative", "Legal Representative (if any)"},
	},
	"original_order_details": {
		{"order_number", "Original Order Number"},
		{"order_date", "Date of Original Order"},
		{"issuing_authority", "Authority that Issued Order"},
		{"order_summary", "Summary of Original Order"},
	},
	"grounds_for_appeal": {
		{"legal_grounds", "Legal Grounds for Appeal"},
		{"errors", "Errors in Original Order"},
		{"new_evidence", "New Evidence Available"},
	},
}

const (
	ruleWidth   = 80
	blankEntry  = "_________________"
	defaultForm = "FIR"
)

// Generator renders legal form documents from templates and user responses.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Known reports whether the form type exists.
func Known(formType string) bool {
	_, ok := formTemplates[formType]
	return ok
}

// Types returns the supported form type identifiers in a stable order.
func Types() []string {
	return []string{"FIR", "RTI", "COMPLAINT", "APPEAL"}
}

// Generate renders a complete form document. Missing responses render as
// blank fill-in lines so the document is usable on paper.
func (g *Generator) Generate(formType string, responses map[string]string) (string, error) {
	template, ok := formTemplates[formType]
	if !ok {
		return "", commonerrors.NewFormTypeError(formType)
	}

	rule := strings.Repeat("=", ruleWidth)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(centerLine(template.Title, ruleWidth) + "\n")
	b.WriteString(rule + "\n")
	b.WriteString("Generated on: " + g.now().Format("January 02, 2006 at 03:04 PM") + "\n")
	b.WriteString("\n")

	for _, section := range template.Sections {
		fields, ok := sectionTemplates[section]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("--- %s ---\n", titleCase(section)))
		b.WriteString("\n")
		for _, field := range fields {
			value := responses[field.Key]
			if value == "" {
				value = blankEntry
			}
			b.WriteString(fmt.Sprintf("%s: %s\n", field.Label, value))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(rule + "\n")
	b.WriteString("IMPORTANT NOTES:\n")
	b.WriteString("- This is a computer-generated form for reference purposes\n")
	b.WriteString("- Please verify all information before submission\n")
	b.WriteString("- Consult with a legal professional for final review\n")
	b.WriteString("- Keep copies of all supporting documents\n")
	b.WriteString(rule + "\n")

	return b.String(), nil
}

// Fields returns the response keys for each section of a form type, in
// rendering order.
func (g *Generator) Fields(formType string) (map[string][]string, error) {
	template, ok := formTemplates[formType]
	if !ok {
		return nil, commonerrors.NewFormTypeError(formType)
	}

	fields := make(map[string][]string, len(template.Sections))
	for _, section := range template.Sections {
		sectionFields, ok := sectionTemplates[section]
		if !ok {
			continue
		}
		keys := make([]string, 0, len(sectionFields))
		for _, field := range sectionFields {
			keys = append(keys, field.Key)
		}
		fields[section] = keys
	}
	return fields, nil
}

func centerLine(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func titleCase(section string) string {
	words := strings.Split(section, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
