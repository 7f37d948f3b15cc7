package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBytes_ValidWebhookEvent(t *testing.T) {
	v := NewSchemaValidator()

	data := []byte(`{"type":"update_column_value","boardId":111,"pulseId":42,"columnId":"numbers","value":59}`)
	assert.NoError(t, v.ValidateBytes(data, SchemaWebhookEvent))
}

func TestValidateBytes_MissingRequiredFields(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{"type":"update_name"}`), SchemaWebhookEvent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")

	err = v.ValidateBytes([]byte(`{"boardId":111}`), SchemaWebhookEvent)
	assert.Error(t, err)
}

func TestValidateBytes_WrongFieldTypes(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{"type":"update_name","boardId":"not-a-number"}`), SchemaWebhookEvent)
	assert.Error(t, err)
}

func TestValidateBytes_MalformedJSON(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{not json`), SchemaWebhookEvent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON data")
}

func TestValidateBytes_UnknownSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "missing.schema.json")
	assert.Error(t, err)
}

func TestValidateBytes_SchemaIsCached(t *testing.T) {
	v := NewSchemaValidator()

	data := []byte(`{"type":"create_pulse","boardId":1}`)
	require.NoError(t, v.ValidateBytes(data, SchemaWebhookEvent))
	require.NoError(t, v.ValidateBytes(data, SchemaWebhookEvent))
}
