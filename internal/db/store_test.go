package db

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	got, err := s.Get(ctx, KeyResumeData)
	require.NoError(t, err)
	assert.Nil(t, got, "missing key should return nil, nil")

	require.NoError(t, s.Put(ctx, KeyResumeData, []byte(`{"summary":"one"}`)))
	require.NoError(t, s.Put(ctx, KeyResumeData, []byte(`{"summary":"two"}`)))
	got, err = s.Get(ctx, KeyResumeData)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"two"}`, string(got))

	require.NoError(t, s.Put(ctx, KeyAPIKey, []byte(`"secret"`)))
	require.NoError(t, s.Delete(ctx, KeyAPIKey))
	got, err = s.Get(ctx, KeyAPIKey)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Delete(ctx, "never-written"))

	require.NoError(t, s.Put(ctx, KeyApplications, []byte(`[]`)))
	require.NoError(t, s.Clear(ctx))
	for _, key := range Keys() {
		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got, key)
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	value := []byte(`"abc"`)
	require.NoError(t, m.Put(ctx, KeyAPIKey, value))
	value[1] = 'X'

	got, err := m.Get(ctx, KeyAPIKey)
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(got))

	got[1] = 'Y'
	again, _ := m.Get(ctx, KeyAPIKey)
	assert.Equal(t, `"abc"`, string(again))
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	exerciseStore(t, s)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, SaveJSON(ctx, s, KeyCurrentTemplate, "modern"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	var template string
	found, err := LoadJSON(ctx, s, KeyCurrentTemplate, &template)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "modern", template)
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	dst := []string{"untouched"}
	found, err := LoadJSON(ctx, m, KeyResumeVersions, &dst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []string{"untouched"}, dst)

	require.NoError(t, m.Put(ctx, KeyResumeVersions, []byte(`not json`)))
	_, err = LoadJSON(ctx, m, KeyResumeVersions, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode resumeVersions")
}

func TestSaveJSON_Unencodable(t *testing.T) {
	err := SaveJSON(context.Background(), NewMemory(), KeyResumeData, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, Options{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"sqlite without path", Options{Driver: DriverSQLite}, "requires a database path"},
		{"postgres without url", Options{Driver: DriverPostgres}, "requires a database URL"},
		{"redis without address", Options{Driver: DriverRedis}, "requires an address"},
		{"unknown", Options{Driver: "etcd"}, "unknown storage driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("boom")
	err := &StoreError{Op: "get", Key: KeyResumeData, Cause: cause}
	assert.Equal(t, `store get "resumeData": boom`, err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store clear: boom", (&StoreError{Op: "clear", Cause: cause}).Error())
}

func TestReplaceNULEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no escapes", input: `{"summary":"plain"}`, want: `{"summary":"plain"}`},
		{name: "nul in string", input: `{"summary":"a\u0000b"}`, want: `{"summary":"a\ufffdb"}`},
		{name: "repeated", input: `["\u0000","\u0000\u0000"]`, want: `["\ufffd","\ufffd\ufffd"]`},
		{name: "escaped backslash", input: `{"path":"C:\\u0000"}`, want: `{"path":"C:\\u0000"}`},
		{name: "escaped backslash then nul", input: `["\\\u0000"]`, want: `["\\\ufffd"]`},
		{name: "other escapes", input: `["\u0001\n\u0000"]`, want: `["\u0001\n\ufffd"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := replaceNULEscapes([]byte(tt.input))
			assert.Equal(t, tt.want, string(got))
			assert.True(t, json.Valid(got))
		})
	}
}
