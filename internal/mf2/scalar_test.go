package mf2_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/mfe/internal/mf2"
)

func TestDecodeScalarString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare string", `"hello world"`, "hello world"},
		{"empty string", `""`, ""},
		{"escaped", `"line\nbreak é"`, "line\nbreak é"},
		{"singleton array", `["hello world"]`, "hello world"},
		{"surrounding whitespace", " \n [ \"x\" ] ", "x"},
		{"multi element keeps first", `["first", "second", "third"]`, "first"},
		{"later elements are not decoded", `["first", {"nested": true}, 42, null]`, "first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mf2.DecodeScalar([]byte(tt.input), mf2.ParseString)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeScalarBareAndSingletonAgree(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "ümlaut", `"quoted"`} {
		bare := strconv.Quote(s)
		fromBare, err := mf2.DecodeScalar([]byte(bare), mf2.ParseString)
		require.NoError(t, err)
		fromArray, err := mf2.DecodeScalar([]byte("["+bare+"]"), mf2.ParseString)
		require.NoError(t, err)
		assert.Equal(t, s, fromBare)
		assert.Equal(t, fromBare, fromArray)
	}
}

func TestDecodeScalarErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty array", `[]`, mf2.ErrEmptySequence},
		{"empty array with spaces", `[ ]`, mf2.ErrEmptySequence},
		{"number", `42`, mf2.ErrTypeMismatch},
		{"boolean", `true`, mf2.ErrTypeMismatch},
		{"null", `null`, mf2.ErrTypeMismatch},
		{"object", `{"value": "x"}`, mf2.ErrTypeMismatch},
		{"array of number", `[42]`, mf2.ErrTypeMismatch},
		{"array of null", `[null]`, mf2.ErrTypeMismatch},
		{"array of object", `[{"html": "<p>x</p>"}]`, mf2.ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mf2.DecodeScalar([]byte(tt.input), mf2.ParseString)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeScalarEmptyArrayMessage(t *testing.T) {
	_, err := mf2.DecodeScalar([]byte(`[]`), mf2.ParseString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value found")
}

func TestDecodeScalarParsedTarget(t *testing.T) {
	n, err := mf2.DecodeScalar([]byte(`"17"`), strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	// Array elements go through the JSON decoder, not the string parser.
	n, err = mf2.DecodeScalar([]byte(`[17]`), strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, 17, n)

	_, err = mf2.DecodeScalar([]byte(`["17"]`), strconv.Atoi)
	assert.ErrorIs(t, err, mf2.ErrTypeMismatch)

	_, err = mf2.DecodeScalar([]byte(`"seventeen"`), strconv.Atoi)
	assert.ErrorIs(t, err, mf2.ErrParseFailure)
}

func TestDecodeScalarTextTarget(t *testing.T) {
	want := time.Date(2026, 2, 27, 9, 30, 0, 0, time.UTC)

	got, err := mf2.DecodeScalar([]byte(`"2026-02-27T09:30:00Z"`), mf2.ParseText[time.Time])
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = mf2.DecodeScalar([]byte(`["2026-02-27T09:30:00Z", "ignored"]`), mf2.ParseText[time.Time])
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = mf2.DecodeScalar([]byte(`"last tuesday"`), mf2.ParseText[time.Time])
	assert.ErrorIs(t, err, mf2.ErrParseFailure)
}
