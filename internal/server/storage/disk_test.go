package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/lifelog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveOpenRemove(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewDiskStore(dir)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("data"), 4, "image/png"))

	rc, err := s.Open(ctx, "a.png")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "data", string(b))

	require.NoError(t, s.Remove(ctx, "a.png"))
	assert.ErrorIs(t, s.Remove(ctx, "a.png"), common.ErrorNotFound)

	_, err = s.Open(ctx, "a.png")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDiskStore_RefusesExistingAndBadNames(t *testing.T) {
	ctx := context.Background()
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("1"), 1, "image/png"))
	assert.Error(t, s.Save(ctx, "a.png", strings.NewReader("2"), 1, "image/png"))

	for _, bad := range []string{"", "..", "../x", "sub/x", `sub\x`} {
		assert.Error(t, s.Save(ctx, bad, strings.NewReader("x"), 1, "image/png"), bad)
		_, err := s.Open(ctx, bad)
		assert.ErrorIs(t, err, common.ErrorNotFound, bad)
	}
}
