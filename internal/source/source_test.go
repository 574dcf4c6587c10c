package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SelectsImplementation(t *testing.T) {
	ctx := context.Background()

	src, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &HTTP{}, src)

	src, err = Open(ctx, Options{Kind: "FILE", Path: filepath.Join(t.TempDir(), "c.yml")})
	require.NoError(t, err)
	assert.IsType(t, &File{}, src)

	_, err = Open(ctx, Options{Kind: "ftp"})
	assert.Error(t, err)
}
