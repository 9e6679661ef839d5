package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestParseEdit(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		in      FieldEdit
		want    Edit
	}{
		{"insurance text", SectionInsurance, FieldEdit{Field: "billing.followUp", Value: "2 weeks"},
			SetInsuranceText{Field: FieldFollowUp, Value: "2 weeks"}},
		{"icd code", SectionInsurance, FieldEdit{Field: "icdCodes.code", Index: intp(1), Value: "M25.561"},
			SetICDCode{Index: 1, Field: ICDFieldCode, Value: "M25.561"}},
		{"icd primary", SectionInsurance, FieldEdit{Field: "icdCodes.isPrimary", Index: intp(1)},
			ToggleICDPrimary{Index: 1}},
		{"order field", SectionOrders, FieldEdit{Field: "quantity", Index: intp(0), Value: "30"},
			SetOrderDetail{Index: 0, Field: "quantity", Value: "30"}},
		{"lab test", SectionOrders, FieldEdit{Field: "tests", Index: intp(1), Item: intp(2), Value: "ESR"},
			SetOrderDetail{Index: 1, Field: "tests", Item: 2, Value: "ESR"}},
		{"patient text", SectionPatient, FieldEdit{Field: "greeting", Value: "Hi"},
			SetPatientText{Field: FieldGreeting, Value: "Hi"}},
		{"patient list", SectionPatient, FieldEdit{Field: "nextSteps", Index: intp(2), Value: "Rest"},
			SetPatientListItem{List: ListNextSteps, Index: 2, Value: "Rest"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEdit(tt.section, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEdit_Errors(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		in      FieldEdit
		want    error
	}{
		{"unknown insurance field", SectionInsurance, FieldEdit{Field: "billing.total"}, ErrUnknownField},
		{"unknown icd field", SectionInsurance, FieldEdit{Field: "icdCodes.system", Index: intp(0)}, ErrUnknownField},
		{"icd without index", SectionInsurance, FieldEdit{Field: "icdCodes.code"}, ErrInvalidValue},
		{"order without index", SectionOrders, FieldEdit{Field: "dose"}, ErrInvalidValue},
		{"tests without item", SectionOrders, FieldEdit{Field: "tests", Index: intp(1)}, ErrInvalidValue},
		{"patient list without index", SectionPatient, FieldEdit{Field: "warningSigns"}, ErrInvalidValue},
		{"unknown patient field", SectionPatient, FieldEdit{Field: "closing"}, ErrUnknownField},
		{"unknown section", Section("billing"), FieldEdit{Field: "x"}, ErrUnknownSection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEdit(tt.section, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseEdits_StopsAtFirstBadEdit(t *testing.T) {
	_, err := ParseEdits(SectionPatient, []FieldEdit{
		{Field: "greeting", Value: "Hi"},
		{Field: "closing"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "edit 1")
}
