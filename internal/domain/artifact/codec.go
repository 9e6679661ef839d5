package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnmarshalJSON decodes an order, choosing the details variant from "type".
func (o *ClinicalOrder) UnmarshalJSON(data []byte) error {
	type plain ClinicalOrder
	var raw struct {
		plain
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	details, err := DecodeDetails(raw.Type, raw.Details)
	if err != nil {
		return fmt.Errorf("order %s: %w", raw.ID, err)
	}

	*o = ClinicalOrder(raw.plain)
	o.Details = details
	return nil
}

// DecodeDetails decodes a details payload for the given order type. An empty
// payload yields nil details.
func DecodeDetails(t OrderType, data json.RawMessage) (OrderDetails, error) {
	var d OrderDetails
	switch t {
	case OrderTypePrescription:
		d = &PrescriptionDetails{}
	case OrderTypeLab:
		d = &LabDetails{}
	case OrderTypeImaging:
		d = &ImagingDetails{}
	case OrderTypeReferral:
		d = &ReferralDetails{}
	default:
		return nil, fmt.Errorf("unknown order type %q", t)
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("decode %s details: %w", t, err)
	}
	return d, nil
}

// MarshalJSON writes grades as canonical JSON numbers and anything else as a
// string.
func (l LiteracyLevel) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(l)); err == nil {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(string(l))
}

// UnmarshalJSON accepts a number or a string. Numeric strings are stored in
// canonical form, so "08" reads as "8".
func (l *LiteracyLevel) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if n, err := strconv.Atoi(s); err == nil {
			s = strconv.Itoa(n)
		}
		*l = LiteracyLevel(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("literacy level: %w", err)
	}
	*l = LiteracyLevel(strconv.Itoa(n))
	return nil
}
