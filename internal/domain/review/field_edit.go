package review

import (
	"fmt"
	"strings"
)

// FieldEdit is the wire form of an Edit.
//
//	insurance: billing.chiefComplaint | billing.emLevel | billing.followUp |
//	           medicalNecessity.justification | fullDocumentation |
//	           icdCodes.code | icdCodes.description | icdCodes.isPrimary (index)
//	orders:    any details field of the order at index; "tests" also takes item
//	patient:   greeting | summary | warningSignsTitle |
//	           medications | nextSteps | warningSigns (index)
type FieldEdit struct {
	Field string `json:"field" validate:"required"`
	Index *int   `json:"index,omitempty" validate:"omitempty,min=0"`
	Item  *int   `json:"item,omitempty" validate:"omitempty,min=0"`
	Value string `json:"value"`
}

// ParseEdit turns a wire edit into a typed Edit for section s.
func ParseEdit(s Section, fe FieldEdit) (Edit, error) {
	switch s {
	case SectionInsurance:
		return parseInsuranceEdit(fe)
	case SectionOrders:
		idx, err := requireIndex(fe)
		if err != nil {
			return nil, err
		}
		item := 0
		if fe.Item != nil {
			item = *fe.Item
		} else if fe.Field == "tests" {
			return nil, fmt.Errorf("%w: tests edit needs an item", ErrInvalidValue)
		}
		return SetOrderDetail{Index: idx, Field: fe.Field, Item: item, Value: fe.Value}, nil
	case SectionPatient:
		return parsePatientEdit(fe)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// ParseEdits parses a batch, stopping at the first bad edit.
func ParseEdits(s Section, fes []FieldEdit) ([]Edit, error) {
	edits := make([]Edit, 0, len(fes))
	for i, fe := range fes {
		e, err := ParseEdit(s, fe)
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
		edits = append(edits, e)
	}
	return edits, nil
}

func parseInsuranceEdit(fe FieldEdit) (Edit, error) {
	switch InsuranceField(fe.Field) {
	case FieldChiefComplaint, FieldEMLevel, FieldFollowUp, FieldJustification, FieldFullDocumentation:
		return SetInsuranceText{Field: InsuranceField(fe.Field), Value: fe.Value}, nil
	}

	sub, ok := strings.CutPrefix(fe.Field, "icdCodes.")
	if !ok {
		return nil, fmt.Errorf("%w: insurance %q", ErrUnknownField, fe.Field)
	}
	idx, err := requireIndex(fe)
	if err != nil {
		return nil, err
	}
	switch sub {
	case "isPrimary":
		return ToggleICDPrimary{Index: idx}, nil
	case string(ICDFieldCode), string(ICDFieldDescription):
		return SetICDCode{Index: idx, Field: ICDField(sub), Value: fe.Value}, nil
	}
	return nil, fmt.Errorf("%w: insurance %q", ErrUnknownField, fe.Field)
}

func parsePatientEdit(fe FieldEdit) (Edit, error) {
	switch PatientField(fe.Field) {
	case FieldGreeting, FieldSummary, FieldWarningSignsTitle:
		return SetPatientText{Field: PatientField(fe.Field), Value: fe.Value}, nil
	}
	switch PatientList(fe.Field) {
	case ListMedications, ListNextSteps, ListWarningSigns:
		idx, err := requireIndex(fe)
		if err != nil {
			return nil, err
		}
		return SetPatientListItem{List: PatientList(fe.Field), Index: idx, Value: fe.Value}, nil
	}
	return nil, fmt.Errorf("%w: patient %q", ErrUnknownField, fe.Field)
}

func requireIndex(fe FieldEdit) (int, error) {
	if fe.Index == nil {
		return 0, fmt.Errorf("%w: %s edit needs an index", ErrInvalidValue, fe.Field)
	}
	return *fe.Index, nil
}
