package post

import (
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFingerprint_IgnoresKeyOrderAndNewlines(t *testing.T) {
	a, err := ComputeFingerprint([]byte("title: A\ndate: 2024-01-01\n"), []byte("body\n"))
	require.NoError(t, err)
	b, err := ComputeFingerprint([]byte("date: 2024-01-01\r\ntitle: A\r\n"), []byte("body\r\n"))
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestComputeFingerprint_ChangesWithContent(t *testing.T) {
	a, err := ComputeFingerprint([]byte("title: A\n"), []byte("body\n"))
	require.NoError(t, err)
	b, err := ComputeFingerprint([]byte("title: A\n"), []byte("edited body\n"))
	require.NoError(t, err)
	c, err := ComputeFingerprint([]byte("title: B\n"), []byte("body\n"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestComputeFingerprint_ExcludesExistingFingerprint(t *testing.T) {
	a, err := ComputeFingerprint([]byte("title: A\n"), []byte("body\n"))
	require.NoError(t, err)
	b, err := ComputeFingerprint([]byte("title: A\n"+mdfp.FingerprintField+": abc123\n"), []byte("body\n"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeFingerprint_InvalidYAML(t *testing.T) {
	_, err := ComputeFingerprint([]byte("title: [oops\n"), nil)
	require.Error(t, err)
}
