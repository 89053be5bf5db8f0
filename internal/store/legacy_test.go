package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportLegacy(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "taken", s.Def().NewGrid())
	require.NoError(t, err)

	dump := strings.Join([]string{
		`{"name":"bob","moose":[["red","red","red"],["transparent","blue","transparent"]],"added":1500000000000,"_id":"a1"}`,
		`{"$$indexCreated":{"fieldName":"name"}}`,
		`{"name":"taken","moose":[["red","red","red"],["red","red","red"]],"added":1500000000001,"_id":"a2"}`,
		`{"name":"wrong size","moose":[["red"]],"added":1500000000002,"_id":"a3"}`,
		`{"name":"bad colour","moose":[["red","mauve","red"],["red","red","red"]],"added":1500000000003,"_id":"a4"}`,
		`{"$$deleted":true,"_id":"a5"}`,
		``,
		`not json`,
	}, "\n")

	result, err := s.ImportLegacy(ctx, strings.NewReader(dump))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Failed, 3)

	bob, err := s.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1500000000000), bob.Created.UnixMilli())
	assert.Equal(t, [][]string{
		{"red", "red", "red"},
		{"transparent", "blue", "transparent"},
	}, bob.Grid.Names())

	taken, err := s.Get(ctx, "taken")
	require.NoError(t, err)
	assert.True(t, taken.Grid.IsTransparent(0, 0), "existing moose must not be overwritten")
}
