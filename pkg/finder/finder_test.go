package finder

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/quill/pkg/logger"
	"github.com/simonhull/firebird-suite/quill/pkg/params"
)

func paramsAt(wd string, verbose bool) params.Parameters {
	return params.New(params.DefaultProjectName, verbose, false, wd, nil)
}

func writeFiles(t *testing.T, fsys afero.Fs, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte("// "+name), 0644))
	}
}

func TestFind_MixedCaseSuffixFilesBeforeSubfolders(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "/src", "a.swift", "a.SWIFT", "a.txt", "sub/b.swift")

	f := New(WithFs(fsys), WithExtension(".swift"))
	files, err := f.Find([]string{"/src"}, paramsAt("/", false))
	require.NoError(t, err)

	require.Len(t, files, 3)
	assert.ElementsMatch(t, []string{"/src/a.swift", "/src/a.SWIFT"}, files[:2])
	assert.Equal(t, "/src/sub/b.swift", files[2])
}

func TestFind_RealFilesystem(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, afero.NewOsFs(), root, "main.go", "README.md", "pkg/a/a.go", "pkg/b/b.GO", "pkg/b/notes.txt")

	files, err := New().Find([]string{root}, paramsAt(root, false))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	// the only top-level match precedes everything found in subfolders
	assert.Equal(t, filepath.Join(root, "main.go"), files[0])

	sort.Strings(files)
	want := []string{
		filepath.Join(root, "main.go"),
		filepath.Join(root, "pkg/a/a.go"),
		filepath.Join(root, "pkg/b/b.GO"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
}

func TestFind_RelativeFolders(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "/work", "src/model.go", "root.go")

	f := New(WithFs(fsys))

	files, err := f.Find([]string{"./src"}, paramsAt("/work", false))
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/src/model.go"}, files)

	files, err = f.Find([]string{""}, paramsAt("/work", false))
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/root.go", "/work/src/model.go"}, files)
}

func TestFind_MultipleFoldersKeepOrderAndDuplicates(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "/", "one/a.go", "two/b.go")

	f := New(WithFs(fsys))
	files, err := f.Find([]string{"/two", "/one", "/two"}, paramsAt("/", false))
	require.NoError(t, err)

	assert.Equal(t, []string{"/two/b.go", "/one/a.go", "/two/b.go"}, files)
}

func TestFind_EmptyFolderList(t *testing.T) {
	files, err := New(WithFs(afero.NewMemMapFs())).Find(nil, paramsAt("/", false))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFind_MissingFolderAborts(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "/", "present/a.go")

	f := New(WithFs(fsys))
	files, err := f.Find([]string{"/present", "/absent"}, paramsAt("/", false))

	require.Error(t, err)
	assert.Nil(t, files)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "/absent")
}

func TestFind_UnreadableFolderAborts(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	_, err := New().Find([]string{root}, paramsAt(root, false))
	assert.Error(t, err)
}

func TestFind_VerboseTrace(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "/src", "a.go", "nested/b.go")

	var buf bytes.Buffer
	f := New(WithFs(fsys), WithLogger(logger.New(logger.LevelDebug, &buf)))

	_, err := f.Find([]string{"/src"}, paramsAt("/", true))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Scanning folder: /src")
	assert.Contains(t, out, "Scanning folder: /src/nested")
	assert.Contains(t, out, "Found files:\n/src/a.go")
	assert.Contains(t, out, "Found subfolders:\n/src/nested")
}

func TestFind_QuietWithoutVerbose(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, "/src", "a.go")

	var buf bytes.Buffer
	f := New(WithFs(fsys), WithLogger(logger.New(logger.LevelDebug, &buf)))

	_, err := f.Find([]string{"/src"}, paramsAt("/", false))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestWithExtension_EmptyKeepsDefault(t *testing.T) {
	assert.Equal(t, DefaultExtension, New(WithExtension("")).Extension())
}
