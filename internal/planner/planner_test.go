package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildOrdersDirectoriesBeforeFiles(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(src, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "inner.txt"), []byte("yy"), 0o644))

	destDir := t.TempDir()
	plan, err := Build([]string{src}, destDir, Options{Estimate: true})
	require.NoError(t, err)

	// index of the "sub" directory item must precede its file
	subIdx, innerIdx := -1, -1
	for i, it := range plan.Items {
		if it.Kind == KindDir && filepath.Base(it.Source) == "sub" {
			subIdx = i
		}
		if it.Kind == KindFile && filepath.Base(it.Source) == "inner.txt" {
			innerIdx = i
		}
	}
	require.NotEqual(t, -1, subIdx, "sub directory item not found")
	require.NotEqual(t, -1, innerIdx, "inner.txt item not found")
	require.Less(t, subIdx, innerIdx, "expected sub dir before inner.txt")

	require.EqualValues(t, len("x")+len("yy"), plan.TotalBytes)
	require.Equal(t, 4, plan.TotalItems) // src dir, sub dir, inner.txt, top.txt
}

func TestBuildUnknownTotalsWhenNotEstimating(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "f.txt"), []byte("x"), 0o644))

	plan, err := Build([]string{src}, t.TempDir(), Options{Estimate: false})
	require.NoError(t, err)
	require.EqualValues(t, -1, plan.TotalBytes)
	require.Equal(t, -1, plan.TotalItems)
}

func TestBuildRejectsDestinationInsideSource(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(src, "nested")
	require.NoError(t, os.Mkdir(dst, 0o755))

	_, err := Build([]string{src}, dst, Options{})
	require.ErrorIs(t, err, ErrRecursiveCopy)
}
