package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Codec converts local field values to and from the wire shapes the board
// platform expects per column kind. Pure and total: no I/O, never panics.
// Values that cannot be represented are reported with ok=false so the caller
// can OMIT the column from the outbound payload. Omission is deliberate:
// a partial update leaves the remote value untouched, while an explicit null
// would erase it.

// DateFormat is the wire format for date columns.
const DateFormat = "2006-01-02"

// PhoneCountryCode is the country hint attached to encoded phone values.
const PhoneCountryCode = "US"

// Encode converts a local value into the wire value for kind.
// ok=false means the value is absent or unrepresentable and the column must
// be omitted from the payload.
func Encode(kind ValueKind, value any) (any, bool) {
	if value == nil {
		return nil, false
	}

	switch kind {
	case KindText, KindEmail:
		s, ok := asString(value)
		if !ok || s == "" {
			return nil, false
		}
		return s, true

	case KindPhone:
		s, ok := asString(value)
		if !ok || s == "" {
			return nil, false
		}
		return map[string]any{"phone": s, "countryShortName": PhoneCountryCode}, true

	case KindDate:
		s, ok := asDate(value)
		if !ok {
			return nil, false
		}
		return map[string]any{"date": s}, true

	case KindStatus:
		s, ok := asString(value)
		if !ok || s == "" {
			return nil, false
		}
		return map[string]any{"label": s}, true

	case KindDropdown:
		labels := asLabels(value)
		if len(labels) == 0 {
			return nil, false
		}
		return map[string]any{"labels": labels}, true

	case KindNumber:
		n, ok := asNumber(value)
		if !ok {
			return nil, false
		}
		return n, true

	case KindCheckbox:
		b, ok := value.(bool)
		if !ok {
			return nil, false
		}
		return map[string]any{"checked": strconv.FormatBool(b)}, true

	case KindLink:
		id, ok := asLinkID(value)
		if !ok {
			return nil, false
		}
		return map[string]any{"item_ids": []int64{id}}, true
	}

	return nil, false
}

// Decode converts a wire value back into a local field value.
// ok=false means the column carried nothing usable and the local field must
// be left untouched.
func Decode(kind ValueKind, wire any) (any, bool) {
	if wire == nil {
		return nil, false
	}

	switch kind {
	case KindText, KindEmail:
		s, ok := asString(wire)
		if !ok || s == "" {
			return nil, false
		}
		return s, true

	case KindPhone:
		if m, ok := wire.(map[string]any); ok {
			if s, ok := asString(m["phone"]); ok && s != "" {
				return s, true
			}
			return nil, false
		}
		s, ok := asString(wire)
		if !ok || s == "" {
			return nil, false
		}
		return s, true

	case KindDate:
		if m, ok := wire.(map[string]any); ok {
			wire = m["date"]
		}
		s, ok := asString(wire)
		if !ok {
			return nil, false
		}
		if _, err := time.Parse(DateFormat, s); err != nil {
			return nil, false
		}
		return s, true

	case KindStatus:
		if m, ok := wire.(map[string]any); ok {
			if s, ok := asString(m["label"]); ok && s != "" {
				return s, true
			}
			return nil, false
		}
		s, ok := asString(wire)
		if !ok || s == "" {
			return nil, false
		}
		return s, true

	case KindDropdown:
		// First label only. Multi-select round-tripping is intentionally
		// lossy: local dropdown fields are scalar.
		if m, ok := wire.(map[string]any); ok {
			if labels, ok := m["labels"].([]any); ok && len(labels) > 0 {
				if s, ok := asString(labels[0]); ok && s != "" {
					return s, true
				}
			}
			return nil, false
		}
		s, ok := asString(wire)
		if !ok || s == "" {
			return nil, false
		}
		return s, true

	case KindNumber:
		if n, ok := asNumber(wire); ok {
			return n, true
		}
		// Non-numeric column text decodes to zero rather than failing the
		// whole record.
		return float64(0), true

	case KindCheckbox:
		if m, ok := wire.(map[string]any); ok {
			wire = m["checked"]
		}
		switch v := wire.(type) {
		case bool:
			return v, true
		case string:
			return v == "true", true
		}
		return nil, false

	case KindLink:
		if m, ok := wire.(map[string]any); ok {
			ids, ok := m["item_ids"].([]any)
			if !ok || len(ids) == 0 {
				return nil, false
			}
			// First linked item only.
			if n, ok := asNumber(ids[0]); ok {
				return strconv.FormatInt(int64(n), 10), true
			}
			if s, ok := asString(ids[0]); ok && s != "" {
				return s, true
			}
		}
		return nil, false
	}

	return nil, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func asDate(v any) (string, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return "", false
		}
		return d.Format(DateFormat), true
	case string:
		if d == "" {
			return "", false
		}
		if t, err := time.Parse(DateFormat, d); err == nil {
			return t.Format(DateFormat), true
		}
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return t.Format(DateFormat), true
		}
		return "", false
	}
	return "", false
}

func asLabels(v any) []string {
	switch l := v.(type) {
	case string:
		if l == "" {
			return nil
		}
		return []string{l}
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := asString(item); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func asLinkID(v any) (int64, bool) {
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case float64:
		return int64(id), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
