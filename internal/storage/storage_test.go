package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/payment-dashboard/internal/config"
)

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{AddressRedis: mr.Addr()}
	r, err := NewRedis(context.Background(), cfg, "dash")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

// backends прогоняет общий контракт KV на каждом бэкенде.
func backends(t *testing.T) map[string]KV {
	r, _ := setupTestRedis(t)
	return map[string]KV{
		"memory": NewMemory(nil),
		"file":   NewFile(filepath.Join(t.TempDir(), "nested", "session.json")),
		"redis":  r,
	}
}

func TestKV_Contract(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.False(t, ok)

			err = kv.SetMany(ctx, map[string]string{KeyToken: "t1", KeyRole: "cs", KeyEmail: "a@b.c"})
			require.NoError(t, err)

			for k, want := range map[string]string{KeyToken: "t1", KeyRole: "cs", KeyEmail: "a@b.c"} {
				got, ok, err := kv.Get(ctx, k)
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, want, got)
			}

			require.NoError(t, kv.SetMany(ctx, map[string]string{KeyToken: "t2"}))
			got, _, err := kv.Get(ctx, KeyToken)
			require.NoError(t, err)
			assert.Equal(t, "t2", got)
			got, _, err = kv.Get(ctx, KeyRole)
			require.NoError(t, err)
			assert.Equal(t, "cs", got)

			require.NoError(t, kv.Clear(ctx))
			for _, k := range []string{KeyToken, KeyRole, KeyEmail} {
				_, ok, err := kv.Get(ctx, k)
				require.NoError(t, err)
				assert.False(t, ok)
			}

			require.NoError(t, kv.Clear(ctx))
		})
	}
}

func TestMemory_InitialAndSnapshot(t *testing.T) {
	initial := map[string]string{"theme": "dark"}
	m := NewMemory(initial)
	initial["theme"] = "light"

	assert.Equal(t, map[string]string{"theme": "dark"}, m.Snapshot())

	require.NoError(t, m.Clear(context.Background()))
	assert.Empty(t, m.Snapshot())
}

func TestFile_PermissionsAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	f := NewFile(path)
	assert.Equal(t, path, f.Path())

	require.NoError(t, f.SetMany(context.Background(), map[string]string{KeyToken: "abc"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFile_ClearRemovesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"t","lang":"id"}`), 0o600))

	f := NewFile(path)
	v, ok, err := f.Get(context.Background(), "lang")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "id", v)

	require.NoError(t, f.Clear(context.Background()))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))

	f := NewFile(path)
	_, _, err := f.Get(context.Background(), KeyToken)
	assert.Error(t, err)

	err = f.SetMany(context.Background(), map[string]string{KeyToken: "x"})
	assert.Error(t, err)
}

func TestFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, ok, err := NewFile(path).Get(context.Background(), KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_ClearOnlyNamespace(t *testing.T) {
	r, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("other:token", "keep"))
	require.NoError(t, mr.Set("dash:extra", "wipe"))
	require.NoError(t, r.SetMany(ctx, map[string]string{KeyToken: "t", KeyEmail: "e"}))

	assert.True(t, mr.Exists("dash:token"))

	require.NoError(t, r.Clear(ctx))

	assert.False(t, mr.Exists("dash:token"))
	assert.False(t, mr.Exists("dash:email"))
	assert.False(t, mr.Exists("dash:extra"))
	assert.True(t, mr.Exists("other:token"))
}

func TestRedis_ClearEscapesNamespacePattern(t *testing.T) {
	ctx := context.Background()
	for _, ns := range []string{"team?", "team*", "team[AB]", `team\`} {
		t.Run(ns, func(t *testing.T) {
			mr, err := miniredis.Run()
			require.NoError(t, err)
			t.Cleanup(mr.Close)

			r, err := NewRedis(ctx, config.RedisConnection{AddressRedis: mr.Addr()}, ns)
			require.NoError(t, err)
			t.Cleanup(func() { _ = r.Close() })

			require.NoError(t, mr.Set("teamB:token", "keep"))
			require.NoError(t, mr.Set("teamAB:token", "keep"))
			require.NoError(t, r.SetMany(ctx, map[string]string{KeyToken: "t"}))

			require.NoError(t, r.Clear(ctx))

			assert.False(t, mr.Exists(ns+":token"))
			assert.True(t, mr.Exists("teamB:token"))
			assert.True(t, mr.Exists("teamAB:token"))
		})
	}
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, "dash", escapeGlob("dash"))
	assert.Equal(t, `a\?b\*c\[d\]e\\f`, escapeGlob(`a?b*c[d]e\f`))
}

func TestNewRedis_InvalidAddr(t *testing.T) {
	cfg := config.RedisConnection{AddressRedis: "127.0.0.1:1"}

	r, err := NewRedis(context.Background(), cfg, "dash")
	assert.Nil(t, r)
	assert.Error(t, err)
}
