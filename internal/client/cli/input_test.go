package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt(rdr("  hello world \n"), &out, "Name")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name: ", out.String())
}

func TestPrompt_LastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	got, err := prompt(rdr("lastline"), &out, "Name")
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestPrompt_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := prompt(rdr(""), &out, "Name")
	assert.Error(t, err)
}

func stubPassword(t *testing.T, pw string, err error) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(pw), err }
}

func TestPromptPassword(t *testing.T) {
	stubPassword(t, "s3cret", nil)
	var out bytes.Buffer

	pw, err := promptPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.NotContains(t, out.String(), "s3cret")
}

func TestPromptPassword_Error(t *testing.T) {
	stubPassword(t, "", errors.New("boom"))
	var out bytes.Buffer

	_, err := promptPassword(&out)
	assert.Error(t, err)
}
