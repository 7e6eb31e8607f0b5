package validation

import (
	"testing"

	"adv-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreate_Valid(t *testing.T) {
	fields, err := ValidateCreate([]byte(`{"header":"h1","description":"d1","owner":"o1"}`))
	require.NoError(t, err)
	assert.Equal(t, "h1", fields.Header)
	assert.Equal(t, "d1", fields.Description)
	assert.Equal(t, "o1", fields.Owner)
}

func TestValidateCreate_IgnoresUnknownKeys(t *testing.T) {
	fields, err := ValidateCreate([]byte(`{"header":"h1","description":"d1","owner":"o1","price":12.5}`))
	require.NoError(t, err)
	assert.Equal(t, "h1", fields.Header)
}

func TestValidateCreate_MissingField(t *testing.T) {
	_, err := ValidateCreate([]byte(`{"header":"h1","owner":"o1"}`))
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "description", verr.Field)
	assert.Equal(t, KindMissing, verr.Kind)
	assert.NotEmpty(t, verr.Message)
}

func TestValidateCreate_WrongType(t *testing.T) {
	_, err := ValidateCreate([]byte(`{"header":42,"description":"d1","owner":"o1"}`))
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "header", verr.Field)
	assert.Equal(t, KindWrongType, verr.Kind)
}

func TestValidateCreate_EmptyField(t *testing.T) {
	_, err := ValidateCreate([]byte(`{"header":"","description":"d1","owner":"o1"}`))
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "header", verr.Field)
	assert.Equal(t, KindEmpty, verr.Kind)
}

func TestValidateCreate_FirstOffendingFieldWins(t *testing.T) {
	// header and owner are both invalid; header is reported because fields
	// are checked in declaration order.
	_, err := ValidateCreate([]byte(`{"header":1,"description":"d1","owner":2}`))
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "header", verr.Field)
}

func TestValidateCreate_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, `42`, `null`, ``} {
		_, err := ValidateCreate([]byte(raw))
		require.Error(t, err, "payload %q", raw)

		verr, ok := err.(*Error)
		require.True(t, ok)
		assert.Equal(t, "body", verr.Field)
		assert.Equal(t, KindWrongType, verr.Kind)
	}
}

func TestValidateUpdate_EmptyPayloadYieldsEmptyPatch(t *testing.T) {
	patch, err := ValidateUpdate([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, patch)
}

func TestValidateUpdate_OnlyPresentKeysKept(t *testing.T) {
	patch, err := ValidateUpdate([]byte(`{"owner":"o2"}`))
	require.NoError(t, err)

	assert.True(t, patch.Has(domain.FieldOwner))
	assert.Equal(t, "o2", patch[domain.FieldOwner])
	assert.False(t, patch.Has(domain.FieldHeader))
	assert.False(t, patch.Has(domain.FieldDescription))
}

func TestValidateUpdate_AllFields(t *testing.T) {
	patch, err := ValidateUpdate([]byte(`{"header":"h2","description":"d2","owner":"o2"}`))
	require.NoError(t, err)
	assert.Len(t, patch, 3)
}

func TestValidateUpdate_WrongType(t *testing.T) {
	_, err := ValidateUpdate([]byte(`{"description":false}`))
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "description", verr.Field)
	assert.Equal(t, KindWrongType, verr.Kind)
}

func TestValidateUpdate_NullIsNotAString(t *testing.T) {
	// An explicit null is present but not string-typed; it must not be
	// confused with an omitted key.
	_, err := ValidateUpdate([]byte(`{"header":null}`))
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, "header", verr.Field)
	assert.Equal(t, KindWrongType, verr.Kind)
}

func TestValidateUpdate_NotAnObject(t *testing.T) {
	// null must not be mistaken for an empty patch: it is a non-object body.
	for _, raw := range []string{`[]`, `null`, `"text"`} {
		_, err := ValidateUpdate([]byte(raw))
		require.Error(t, err, "payload %q", raw)

		verr, ok := err.(*Error)
		require.True(t, ok)
		assert.Equal(t, "body", verr.Field)
		assert.Equal(t, KindWrongType, verr.Kind)
	}
}
