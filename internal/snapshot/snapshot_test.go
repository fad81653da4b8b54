package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haslund/reorg/internal/fsops"
)

func TestDecodeTreeJSONRepairsTrailingComma(t *testing.T) {
	// Pre-1.8.0 tree emits a trailing comma before the closing bracket
	// of the top-level array, split across lines.
	raw := []byte(`[
  {"type":"directory","name":"/data","user":"bob","group":"staff","contents":[
    {"type":"file","name":"/data/a.txt","user":"bob","group":"staff","size":64}
  ]},
  {"type":"report","directories":1,"files":1}
,
]`)

	entries, err := decodeTreeJSON(raw)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	root := entries[0]
	assert.Equal(t, "/data", root.Name)
	assert.True(t, root.IsDir())
	require.Len(t, root.Contents, 1)
	assert.Equal(t, "/data/a.txt", root.Contents[0].Name)
	assert.Equal(t, int64(64), root.Contents[0].Size)

	assert.Equal(t, TypeReport, entries[1].Type)
}

func TestDecodeTreeJSONWellFormed(t *testing.T) {
	raw := []byte(`[{"type":"directory","name":"/d","contents":[]},{"type":"report","directories":1,"files":0}]`)

	entries, err := decodeTreeJSON(raw)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDecodeTreeJSONInvalid(t *testing.T) {
	_, err := decodeTreeJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestReadTreeUsesRunner(t *testing.T) {
	orig := defaultRunTree
	defer func() { defaultRunTree = orig }()

	var gotDir string
	defaultRunTree = func(_ context.Context, dir string) ([]byte, error) {
		gotDir = dir
		return []byte(`[{"type":"directory","name":"/scanned","contents":[]},{"type":"report","directories":1,"files":0},]`), nil
	}

	entries, err := ReadTree(context.Background(), "/scanned")
	require.NoError(t, err)
	assert.Equal(t, "/scanned", gotDir)
	require.Len(t, entries, 2)
	assert.Equal(t, "/scanned", entries[0].Name)
}

func TestReadTreeRunnerError(t *testing.T) {
	orig := defaultRunTree
	defer func() { defaultRunTree = orig }()

	wantErr := errors.New("tree exploded")
	defaultRunTree = func(context.Context, string) ([]byte, error) {
		return nil, wantErr
	}

	_, err := ReadTree(context.Background(), "/anywhere")
	assert.ErrorIs(t, err, wantErr)
}

func newTestFS(t *testing.T) fsops.FS {
	t.Helper()
	return fsops.New(osfs.New(t.TempDir()))
}

func TestScan(t *testing.T) {
	fs := newTestFS(t)
	require.NoError(t, fs.WriteFile("/data/b.txt", []byte("1234"), 0644))
	require.NoError(t, fs.WriteFile("/data/a/nested.txt", []byte("12345678"), 0644))

	entries, err := Scan(fs, "/data", nil)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	root := entries[0]
	assert.Equal(t, "/data", root.Name)
	assert.True(t, root.IsDir())
	assert.Equal(t, int64(12), root.Size)

	// Children come back name-sorted, directories and files mixed.
	require.Len(t, root.Contents, 2)
	assert.Equal(t, "/data/a", root.Contents[0].Name)
	assert.Equal(t, "/data/b.txt", root.Contents[1].Name)

	sub := root.Contents[0]
	require.Len(t, sub.Contents, 1)
	assert.Equal(t, "/data/a/nested.txt", sub.Contents[0].Name)
	assert.Equal(t, int64(8), sub.Contents[0].Size)

	report := entries[1]
	assert.Equal(t, TypeReport, report.Type)
	assert.Equal(t, int64(12), report.Size)
}

func TestScanExcludes(t *testing.T) {
	fs := newTestFS(t)
	require.NoError(t, fs.WriteFile("/data/keep.txt", []byte("k"), 0644))
	require.NoError(t, fs.WriteFile("/data/skip.log", []byte("s"), 0644))
	require.NoError(t, fs.WriteFile("/data/.git/config", []byte("c"), 0644))
	require.NoError(t, fs.WriteFile("/data/sub/deep.log", []byte("d"), 0644))

	entries, err := Scan(fs, "/data", []string{"*.log", ".git"})
	require.NoError(t, err)

	index := Index(entries)
	assert.Contains(t, index, "/data/keep.txt")
	assert.Contains(t, index, "/data/sub")
	assert.NotContains(t, index, "/data/skip.log")
	assert.NotContains(t, index, "/data/.git")

	// Base-name matching prunes *.log at any depth.
	assert.NotContains(t, index, "/data/sub/deep.log")
}

func TestScanDoubleStarExclude(t *testing.T) {
	fs := newTestFS(t)
	require.NoError(t, fs.WriteFile("/data/src/build/out.bin", []byte("b"), 0644))
	require.NoError(t, fs.WriteFile("/data/src/main.go", []byte("m"), 0644))

	entries, err := Scan(fs, "/data", []string{"**/build"})
	require.NoError(t, err)

	index := Index(entries)
	assert.Contains(t, index, "/data/src/main.go")
	assert.NotContains(t, index, "/data/src/build")
}

func TestScanMissingDir(t *testing.T) {
	fs := newTestFS(t)
	_, err := Scan(fs, "/nope", nil)
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	entries := []Entry{
		{
			Name: "/d",
			Type: TypeDirectory,
			Contents: []Entry{
				{Name: "/d/f.txt", Type: TypeFile, Size: 1},
			},
		},
		{Type: TypeReport, Size: 1},
	}

	index := Index(entries)
	require.Len(t, index, 2)
	assert.True(t, index["/d"].IsDir())
	assert.False(t, index["/d/f.txt"].IsDir())
}
