package editor

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFoldsCollapsedNodes(t *testing.T) {
	smp := newSample()
	s := NewSession(&fakeClient{roots: smp.roots}, uuid.New())
	require.NoError(t, s.Load(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "+ 1. [module] M1"))
	assert.True(t, strings.HasPrefix(lines[1], "  2. [module] M2"))

	s.Toggle(smp.m1)
	buf.Reset()
	require.NoError(t, s.Render(&buf))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "- 1. [module] M1"))
	assert.True(t, strings.HasPrefix(lines[1], "    1. [lesson] L1"))
	assert.True(t, strings.HasPrefix(lines[2], "    2. [lesson] L2"))
}

func TestRenderAll(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, newSample().roots, nil))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))
}
