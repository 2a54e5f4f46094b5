package tail

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		n     int
		want  []string
	}{
		{"fewer lines than n", "a\nb\n", 5, []string{"a", "b"}},
		{"exactly n", "a\nb\nc\n", 3, []string{"a", "b", "c"}},
		{"more lines than n", "1\n2\n3\n4\n5\n", 2, []string{"4", "5"}},
		{"no trailing newline", "x\ny\nz", 2, []string{"y", "z"}},
		{"crlf", "x\r\ny\r\n", 1, []string{"y"}},
		{"empty input", "", 3, []string{}},
		{"zero count", "a\nb\n", 0, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Lines(strings.NewReader(tc.input), tc.n)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLinesTooLong(t *testing.T) {
	long := strings.Repeat("x", MaxLineSize+1)
	_, err := Lines(strings.NewReader(long), 1)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestBytes(t *testing.T) {
	got, err := Bytes(strings.NewReader("0123456789"), 4)
	require.NoError(t, err)
	assert.Equal(t, "6789", string(got))

	got, err = Bytes(strings.NewReader("ab"), 4)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(got))

	got, err = Bytes(strings.NewReader("ab"), 0)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBytesError(t *testing.T) {
	errRead := errors.New("read failed")
	_, err := Bytes(iotest.ErrReader(errRead), 4)
	assert.ErrorIs(t, err, errRead)
}

func TestCountTooLarge(t *testing.T) {
	_, err := Lines(strings.NewReader("a\n"), MaxLines+1)
	assert.ErrorIs(t, err, ErrCountTooLarge)

	_, err = Bytes(strings.NewReader("a"), MaxBytes+1)
	assert.ErrorIs(t, err, ErrCountTooLarge)
}
