package jsondup_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emdb-empiar/sfftkrw/internal/jsondup"
)

func TestCheck_NoDuplicates(t *testing.T) {
	require.NoError(t, jsondup.Check([]byte(`{"a":1,"b":{"a":2},"c":[{"a":1},{"a":2}]}`)))
}

// TestCheck_Nested reports the pointer of the repeated key inside an array
// item.
func TestCheck_Nested(t *testing.T) {
	err := jsondup.Check([]byte(`{"segment_list":[{"id":1},{"id":2,"colour":{"red":0.1,"red":0.2}}]}`))
	var dup *jsondup.DuplicateKeyError
	require.True(t, errors.As(err, &dup), "got %v", err)
	require.Equal(t, "red", dup.Key)
	require.Equal(t, "/segment_list/1/colour/red", dup.Path)
}

func TestCheck_TopLevel(t *testing.T) {
	err := jsondup.Check([]byte(`{"name":"a","version":"0.8.0.dev1","name":"b"}`))
	var dup *jsondup.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "/name", dup.Path)
}

func TestCheck_EscapesPointer(t *testing.T) {
	err := jsondup.Check([]byte(`{"x":{"a/b":1,"a/b":2}}`))
	var dup *jsondup.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "/x/a~1b", dup.Path)
}

// TestCheck_SameKeyInSiblings allows a key to repeat across sibling objects.
func TestCheck_SameKeyInSiblings(t *testing.T) {
	err := jsondup.Check([]byte(`[{"id":1,"v":[1,2]},{"id":1,"v":[3]}]`))
	var dup *jsondup.DuplicateKeyError
	require.False(t, errors.As(err, &dup))
	require.NoError(t, err)
}
