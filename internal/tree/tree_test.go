package tree

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemTree(t *testing.T, files map[string]string) (*Tree, afero.Fs) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for p, content := range files {
		require.NoError(t, afero.WriteFile(mem, p, []byte(content), 0644))
	}
	return New(mem), mem
}

func TestTree_StagesWithoutTouchingDisk(t *testing.T) {
	tr, mem := newMemTree(t, map[string]string{"/angular.json": "{}"})

	require.NoError(t, tr.Overwrite("angular.json", []byte(`{"a":1}`)))
	require.NoError(t, tr.Create("/tailwind/tailwind.css", []byte("@tailwind base;")))

	got, err := tr.Read("/angular.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	onDisk, err := afero.ReadFile(mem, "/angular.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(onDisk), "base filesystem must be untouched before commit")

	exists, err := afero.Exists(mem, "/tailwind/tailwind.css")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTree_Commit(t *testing.T) {
	tr, mem := newMemTree(t, map[string]string{"/angular.json": "{}"})

	require.NoError(t, tr.Write("/angular.json", []byte("updated")))
	require.NoError(t, tr.Write("/tailwind/tailwind.css", []byte("css")))
	require.NoError(t, tr.Rename("/tailwind/tailwind.css", "/tailwind/tailwind.scss"))
	require.NoError(t, tr.Commit())

	data, err := afero.ReadFile(mem, "/angular.json")
	require.NoError(t, err)
	assert.Equal(t, "updated", string(data))

	data, err = afero.ReadFile(mem, "/tailwind/tailwind.scss")
	require.NoError(t, err)
	assert.Equal(t, "css", string(data))

	exists, _ := afero.Exists(mem, "/tailwind/tailwind.css")
	assert.False(t, exists)
	assert.Empty(t, tr.Actions(), "commit clears the stage")
}

func TestTree_CreateExistingFails(t *testing.T) {
	tr, _ := newMemTree(t, map[string]string{"/package.json": "{}"})

	err := tr.Create("/package.json", []byte("{}"))
	assert.True(t, errors.Is(err, fs.ErrExist), "got %v", err)

	err = tr.Overwrite("/missing.json", []byte("{}"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestTree_DeleteDirectory(t *testing.T) {
	tr, mem := newMemTree(t, map[string]string{
		"/tailwind/tailwind.config.js":  "a",
		"/tailwind/tailwind.webpack.js": "b",
		"/src/main.ts":                  "c",
	})
	require.NoError(t, tr.Create("/tailwind/extra.css", []byte("d")))

	assert.True(t, tr.HasDir("/tailwind"))
	require.NoError(t, tr.Delete("/tailwind"))
	assert.False(t, tr.HasDir("/tailwind"))
	assert.False(t, tr.Exists("/tailwind/tailwind.config.js"))
	assert.False(t, tr.Exists("/tailwind/extra.css"))
	assert.True(t, tr.Exists("/src/main.ts"))

	err := tr.Delete("/tailwind")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "second delete should report missing, got %v", err)

	require.NoError(t, tr.Commit())
	exists, err := afero.DirExists(mem, "/tailwind")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTree_RecreateAfterDelete(t *testing.T) {
	tr, mem := newMemTree(t, map[string]string{"/tailwind/tailwind.css": "old"})

	require.NoError(t, tr.Delete("/tailwind"))
	require.NoError(t, tr.Create("/tailwind/tailwind.css", []byte("new")))
	assert.True(t, tr.HasDir("/tailwind"))
	require.NoError(t, tr.Commit())

	data, err := afero.ReadFile(mem, "/tailwind/tailwind.css")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestTree_Files(t *testing.T) {
	tr, _ := newMemTree(t, map[string]string{
		"/tailwind/b.js": "",
		"/tailwind/a.js": "",
		"/other/c.js":    "",
	})
	require.NoError(t, tr.Create("/tailwind/c.css", nil))
	require.NoError(t, tr.Delete("/tailwind/b.js"))

	files, err := tr.Files("tailwind")
	require.NoError(t, err)
	assert.Equal(t, []string{"/tailwind/a.js", "/tailwind/c.css"}, files)
}

func TestTree_ActionStrings(t *testing.T) {
	tr, _ := newMemTree(t, map[string]string{"/a": "x"})
	require.NoError(t, tr.Overwrite("/a", []byte("yy")))
	require.NoError(t, tr.Rename("/a", "/b"))
	require.NoError(t, tr.Delete("/b"))

	var got []string
	for _, a := range tr.Actions() {
		got = append(got, a.String())
	}
	assert.Equal(t, []string{"UPDATE /a (2 bytes)", "RENAME /a => /b", "DELETE /b"}, got)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "/angular.json", Clean("angular.json"))
	assert.Equal(t, "/tailwind/x.js", Clean("./tailwind//x.js"))
	assert.Equal(t, "/", Clean(""))
}
