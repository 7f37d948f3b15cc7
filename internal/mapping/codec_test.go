package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Text(t *testing.T) {
	wire, ok := Encode(KindText, "hello")
	require.True(t, ok)
	assert.Equal(t, "hello", wire)

	_, ok = Encode(KindText, "")
	assert.False(t, ok)

	_, ok = Encode(KindText, 42)
	assert.False(t, ok)
}

func TestEncode_NilIsOmitted(t *testing.T) {
	for _, kind := range []ValueKind{KindText, KindEmail, KindPhone, KindDate, KindStatus, KindDropdown, KindNumber, KindCheckbox, KindLink} {
		_, ok := Encode(kind, nil)
		assert.False(t, ok, "kind %s must omit nil", kind)
	}
}

func TestEncode_Phone(t *testing.T) {
	wire, ok := Encode(KindPhone, "15551234567")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"phone": "15551234567", "countryShortName": PhoneCountryCode}, wire)
}

func TestEncode_Date(t *testing.T) {
	wire, ok := Encode(KindDate, "2026-03-15")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"date": "2026-03-15"}, wire)

	wire, ok = Encode(KindDate, time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"date": "2026-03-15"}, wire)

	// RFC3339 input is normalized to the date-only wire format.
	wire, ok = Encode(KindDate, "2026-03-15T10:00:00Z")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"date": "2026-03-15"}, wire)

	_, ok = Encode(KindDate, "not a date")
	assert.False(t, ok)

	_, ok = Encode(KindDate, time.Time{})
	assert.False(t, ok)
}

func TestEncode_Status(t *testing.T) {
	wire, ok := Encode(KindStatus, "Active")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"label": "Active"}, wire)
}

func TestEncode_Dropdown(t *testing.T) {
	wire, ok := Encode(KindDropdown, "Premium")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"labels": []string{"Premium"}}, wire)

	wire, ok = Encode(KindDropdown, []string{"Premium", "Annual"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{"labels": []string{"Premium", "Annual"}}, wire)

	_, ok = Encode(KindDropdown, "")
	assert.False(t, ok)
}

func TestEncode_Number(t *testing.T) {
	wire, ok := Encode(KindNumber, float64(59.5))
	require.True(t, ok)
	assert.Equal(t, float64(59.5), wire)

	wire, ok = Encode(KindNumber, "42")
	require.True(t, ok)
	assert.Equal(t, float64(42), wire)

	_, ok = Encode(KindNumber, "not a number")
	assert.False(t, ok)
}

func TestEncode_Checkbox(t *testing.T) {
	wire, ok := Encode(KindCheckbox, true)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"checked": "true"}, wire)

	wire, ok = Encode(KindCheckbox, false)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"checked": "false"}, wire)

	_, ok = Encode(KindCheckbox, "yes")
	assert.False(t, ok)
}

func TestEncode_Link(t *testing.T) {
	wire, ok := Encode(KindLink, "12345")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"item_ids": []int64{12345}}, wire)

	_, ok = Encode(KindLink, "not-an-id")
	assert.False(t, ok)
}

func TestDecode_Text(t *testing.T) {
	value, ok := Decode(KindText, "hello")
	require.True(t, ok)
	assert.Equal(t, "hello", value)

	_, ok = Decode(KindText, "")
	assert.False(t, ok)
}

func TestDecode_Phone(t *testing.T) {
	value, ok := Decode(KindPhone, map[string]any{"phone": "15551234567", "countryShortName": "US"})
	require.True(t, ok)
	assert.Equal(t, "15551234567", value)

	value, ok = Decode(KindPhone, "15551234567")
	require.True(t, ok)
	assert.Equal(t, "15551234567", value)
}

func TestDecode_Date(t *testing.T) {
	value, ok := Decode(KindDate, map[string]any{"date": "2026-03-15"})
	require.True(t, ok)
	assert.Equal(t, "2026-03-15", value)

	_, ok = Decode(KindDate, map[string]any{"date": "15/03/2026"})
	assert.False(t, ok)
}

func TestDecode_Status(t *testing.T) {
	value, ok := Decode(KindStatus, map[string]any{"label": "Active"})
	require.True(t, ok)
	assert.Equal(t, "Active", value)

	_, ok = Decode(KindStatus, map[string]any{})
	assert.False(t, ok)
}

func TestDecode_DropdownTakesFirstLabel(t *testing.T) {
	value, ok := Decode(KindDropdown, map[string]any{"labels": []any{"Premium", "Annual"}})
	require.True(t, ok)
	assert.Equal(t, "Premium", value)

	_, ok = Decode(KindDropdown, map[string]any{"labels": []any{}})
	assert.False(t, ok)
}

func TestDecode_Number(t *testing.T) {
	value, ok := Decode(KindNumber, float64(59.5))
	require.True(t, ok)
	assert.Equal(t, float64(59.5), value)

	value, ok = Decode(KindNumber, "42")
	require.True(t, ok)
	assert.Equal(t, float64(42), value)

	// Garbage column text decodes to zero instead of failing the record.
	value, ok = Decode(KindNumber, "n/a")
	require.True(t, ok)
	assert.Equal(t, float64(0), value)
}

func TestDecode_Checkbox(t *testing.T) {
	value, ok := Decode(KindCheckbox, map[string]any{"checked": "true"})
	require.True(t, ok)
	assert.Equal(t, true, value)

	value, ok = Decode(KindCheckbox, map[string]any{"checked": "false"})
	require.True(t, ok)
	assert.Equal(t, false, value)

	value, ok = Decode(KindCheckbox, true)
	require.True(t, ok)
	assert.Equal(t, true, value)
}

func TestDecode_Link(t *testing.T) {
	value, ok := Decode(KindLink, map[string]any{"item_ids": []any{float64(12345)}})
	require.True(t, ok)
	assert.Equal(t, "12345", value)

	_, ok = Decode(KindLink, map[string]any{"item_ids": []any{}})
	assert.False(t, ok)
}

func TestDecode_NilIsIgnored(t *testing.T) {
	for _, kind := range []ValueKind{KindText, KindEmail, KindPhone, KindDate, KindStatus, KindDropdown, KindNumber, KindCheckbox, KindLink} {
		_, ok := Decode(kind, nil)
		assert.False(t, ok, "kind %s must ignore nil", kind)
	}
}

func TestRoundTrip_PreservesValues(t *testing.T) {
	cases := []struct {
		kind  ValueKind
		value any
	}{
		{KindText, "notes here"},
		{KindEmail, "a@b.com"},
		{KindPhone, "15551234567"},
		{KindDate, "2026-03-15"},
		{KindStatus, "Active"},
		{KindDropdown, "Premium"},
		{KindNumber, float64(12.5)},
		{KindCheckbox, true},
	}
	for _, tc := range cases {
		wire, ok := Encode(tc.kind, tc.value)
		require.True(t, ok, "encode %s", tc.kind)

		// Dropdown wire labels come back as []any after a JSON round trip.
		if m, isMap := wire.(map[string]any); isMap {
			if labels, isLabels := m["labels"].([]string); isLabels {
				anyLabels := make([]any, len(labels))
				for i, l := range labels {
					anyLabels[i] = l
				}
				m["labels"] = anyLabels
			}
		}

		got, ok := Decode(tc.kind, wire)
		require.True(t, ok, "decode %s", tc.kind)
		assert.Equal(t, tc.value, got, "round trip %s", tc.kind)
	}
}
