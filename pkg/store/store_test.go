package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	registered map[string]string
	failOn     string
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{registered: make(map[string]string)}
}

func (r *fakeRegistrar) RegisterTemplate(name, source string) error {
	if name == r.failOn {
		return errors.New("compile failed")
	}
	r.registered[name] = source
	return nil
}

type staticStore struct {
	templates []Template
	err       error
}

func (s *staticStore) List(ctx context.Context) ([]Template, error) {
	return s.templates, s.err
}

func TestSync(t *testing.T) {
	reg := newFakeRegistrar()

	count, err := Sync(context.Background(), reg,
		&staticStore{templates: []Template{{Name: "a", Source: "1"}}},
		&staticStore{templates: []Template{{Name: "b", Source: "2"}, {Name: "a", Source: "3"}}},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Later stores override earlier ones.
	assert.Equal(t, "3", reg.registered["a"])
	assert.Equal(t, "2", reg.registered["b"])
}

func TestSyncListError(t *testing.T) {
	reg := newFakeRegistrar()

	_, err := Sync(context.Background(), reg, &staticStore{err: errors.New("down")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list")
}

func TestSyncRegisterError(t *testing.T) {
	reg := newFakeRegistrar()
	reg.failOn = "bad"

	count, err := Sync(context.Background(), reg, &staticStore{templates: []Template{
		{Name: "ok", Source: "1"},
		{Name: "bad", Source: "{{"},
	}})
	require.Error(t, err)
	assert.Equal(t, 1, count)
}

func TestDirList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "emails"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greeting.hbs"), []byte("Hi {{name}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "emails", "welcome.hbs"), []byte("Welcome"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	templates, err := NewDir(dir, "").List(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 2)

	byName := make(map[string]string)
	for _, tpl := range templates {
		byName[tpl.Name] = tpl.Source
	}
	assert.Equal(t, "Hi {{name}}", byName["greeting"])
	assert.Equal(t, "Welcome", byName["emails/welcome"])
}

func TestDirListCustomExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tpl"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hbs"), []byte("y"), 0o644))

	templates, err := NewDir(dir, ".tpl").List(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "a", templates[0].Name)
}

func TestDirListMissingDirectory(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "nope"), "").List(context.Background())
	assert.Error(t, err)
}

func TestDirListCancelledContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hbs"), []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDir(dir, "").List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
