package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/store"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Lockbox.json")
	doc, err := node.Parse([]byte(`{"name":"box","answers":[{"code":"1","item":"key"}],"empty":{}}`))
	require.NoError(t, err)

	require.NoError(t, store.Disk{}.Save(path, doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{
  "name": "box",
  "answers": [
    {
      "code": "1",
      "item": "key"
    }
  ],
  "empty": {}
}
`, string(raw))

	back, err := store.Disk{}.Load(path)
	require.NoError(t, err)
	require.True(t, node.Equal(doc, back))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLoad_UTF16(t *testing.T) {
	dir := t.TempDir()
	text := `{"background":"北の部屋"}`
	le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFE}, le[:2])
	require.Equal(t, []byte{0xFE, 0xFF}, be[:2])
	utf8bom := append([]byte{0xEF, 0xBB, 0xBF}, text...)

	for name, data := range map[string][]byte{"le.json": le, "be.json": be, "bom.json": utf8bom} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		n, err := store.Disk{}.Load(path)
		require.NoError(t, err, name)
		require.Equal(t, "北の部屋", n.Field("background").StringOr(""), name)
	}
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	_, err := store.Disk{}.Load(filepath.Join(dir, "missing.json"))
	var pe *store.PersistenceError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "load", pe.Op)
	require.True(t, store.IsNotExist(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"a":`), 0o644))
	_, err = store.Disk{}.Load(bad)
	require.ErrorAs(t, err, &pe)
	require.Equal(t, bad, pe.Path)

	dup := filepath.Join(dir, "dup.json")
	require.NoError(t, os.WriteFile(dup, []byte(`{"a":1,"a":2}`), 0o644))
	_, err = store.Disk{Strict: dimschema.Strictness{OnDuplicateKey: dimschema.Error}}.Load(dup)
	iss, ok := dimschema.AsIssues(err)
	require.True(t, ok, "duplicate keys surface as issues: %v", err)
	require.Equal(t, dimschema.CodeDuplicateKey, iss[0].Code)

	n, err := store.Disk{Strict: dimschema.Strictness{OnDuplicateKey: dimschema.Warn}}.Load(dup)
	require.NoError(t, err)
	require.Equal(t, "2", n.Field("a").Literal())
}

func TestSave_Failure(t *testing.T) {
	err := store.Disk{}.Save(filepath.Join(t.TempDir(), "no", "such", "dir", "x.json"), node.NewObject())
	var pe *store.PersistenceError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "save", pe.Op)
}

func TestListMkdirRemove(t *testing.T) {
	dir := t.TempDir()
	d := store.Disk{}
	require.NoError(t, d.Mkdir(filepath.Join(dir, "North", "deep")))
	require.NoError(t, d.Save(filepath.Join(dir, "b.json"), node.NewObject()))
	require.NoError(t, d.Save(filepath.Join(dir, "a.json"), node.NewObject()))

	entries, err := d.List(dir)
	require.NoError(t, err)
	require.Equal(t, []store.Entry{{Name: "North", Dir: true}, {Name: "a.json"}, {Name: "b.json"}}, entries)

	require.True(t, d.Exists(filepath.Join(dir, "North")))
	require.NoError(t, d.RemoveAll(filepath.Join(dir, "North")))
	require.False(t, d.Exists(filepath.Join(dir, "North")))

	_, err = d.List(filepath.Join(dir, "gone"))
	require.True(t, store.IsNotExist(err))
}
