// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package datafile

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "separators get a trailing space",
			input: `{"a":1,"b":[true,false,null]}`,
			want:  `{"a": 1, "b": [true, false, null]}`,
		},
		{
			name:  "key order is preserved",
			input: `{"zeta": 1, "alpha": 2}`,
			want:  `{"zeta": 1, "alpha": 2}`,
		},
		{
			name:  "duplicate key keeps first position and last value",
			input: `{"a": 1, "b": 2, "a": 3}`,
			want:  `{"a": 3, "b": 2}`,
		},
		{
			name:  "empty containers",
			input: "[ [ ], { } ]",
			want:  `[[], {}]`,
		},
		{
			name:  "nested timeline shape",
			input: `{"weeks":[{"weekOf":"2025-01-20","actions":[]}]}`,
			want:  `{"weeks": [{"weekOf": "2025-01-20", "actions": []}]}`,
		},
		{
			name:  "non-ASCII is escaped",
			input: `"café"`,
			want:  `"caf\u00e9"`,
		},
		{
			name:  "astral code point becomes a surrogate pair",
			input: `"😀"`,
			want:  `"\ud83d\ude00"`,
		},
		{
			name:  "escaped surrogate pair round-trips",
			input: `"\ud83d\ude00"`,
			want:  `"\ud83d\ude00"`,
		},
		{
			name:  "solidus is not escaped",
			input: `"a/b\/c"`,
			want:  `"a/b/c"`,
		},
		{
			name:  "short escapes",
			input: `"line\nbreak\ttab \"q\" \\ \b\f\r"`,
			want:  `"line\nbreak\ttab \"q\" \\ \b\f\r"`,
		},
		{
			name:  "control characters and DEL use hex escapes",
			input: `"\u0001\u007f"`,
			want:  `"\u0001\u007f"`,
		},
		{
			name:  "integers are kept as written",
			input: `[0, -7, 12345678901234567890, -0]`,
			want:  `[0, -7, 12345678901234567890, 0]`,
		},
		{
			name:  "floats use shortest positional form",
			input: `[1.0, 1.50, 1e2, 2.5e-3, 0.0001, 1e15, 123456789012345.6, -0.0]`,
			want:  `[1.0, 1.5, 100.0, 0.0025, 0.0001, 1000000000000000.0, 123456789012345.6, -0.0]`,
		},
		{
			name:  "floats switch to exponent form outside the positional range",
			input: `[1E16, 0.00001, 1.5e-7, 1.5e300]`,
			want:  `[1e+16, 1e-05, 1.5e-07, 1.5e+300]`,
		},
		{
			name:  "overflowing floats become Infinity",
			input: `[1e400, -1e400]`,
			want:  `[Infinity, -Infinity]`,
		},
		{
			name:  "NaN and infinity literals are accepted",
			input: `[NaN, Infinity]`,
			want:  `[NaN, Infinity]`,
		},
		{
			name:  "non-finite literals inside strings stay strings",
			input: `{"a":-Infinity,"b":"NaN","c":"x\"NaN"}`,
			want:  `{"a": -Infinity, "b": "NaN", "c": "x\"NaN"}`,
		},
		{
			name:  "non-finite literal after a number",
			input: `[1,NaN]`,
			want:  `[1, NaN]`,
		},
		{
			name:  "top-level NaN",
			input: `NaN`,
			want:  `NaN`,
		},
		{
			name:  "top-level scalars",
			input: " 42\n",
			want:  `42`,
		},
		{
			name:  "null document",
			input: `null`,
			want:  `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.input))
			require.NoError(t, err)

			got, err := Encode(v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			size, err := SerializedSize(v)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), size)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "empty input", input: []byte("")},
		{name: "whitespace only", input: []byte("  \n")},
		{name: "trailing comma", input: []byte(`{"a": 1,}`)},
		{name: "missing comma", input: []byte(`{"a": 1 "b": 2}`)},
		{name: "missing value", input: []byte(`{"a": }`)},
		{name: "unterminated array", input: []byte(`[1, 2`)},
		{name: "bare word", input: []byte(`nope`)},
		{name: "second value", input: []byte(`{"a": 1} {}`), wantErr: ErrTrailingData},
		{name: "trailing garbage", input: []byte(`[1] x`)},
		{name: "negated NaN", input: []byte(`-NaN`)},
		{name: "NaN glued to a number", input: []byte(`[1NaN]`)},
		{name: "NaN followed by garbage", input: []byte(`[NaNx]`)},
		{name: "NaN as object key", input: []byte(`{NaN: 1}`)},
		{name: "lowercase nan", input: []byte(`nan`)},
		{name: "second NaN", input: []byte(`NaN NaN`), wantErr: ErrTrailingData},
		{name: "invalid UTF-8", input: []byte{'"', 0xff, '"'}, wantErr: ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeKeepsKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"summary": {}, "actions": [], "lastUpdated": "2025-03-01"}`))
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok, "expected *Object, got %T", v)
	assert.Equal(t, []string{"summary", "actions", "lastUpdated"}, obj.Keys)
	assert.Equal(t, "2025-03-01", obj.Values["lastUpdated"])
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T) string
		wantExists bool
		wantSize   int
		errMsg     string
	}{
		{
			name: "valid file reports re-serialized size",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "actions-pushback.json", "{\n  \"actions\": [1,2]\n}\n")
				return dir
			},
			wantExists: true,
			wantSize:   len(`{"actions": [1, 2]}`),
		},
		{
			name: "missing file is not an error",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "missing directory is not an error",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
		},
		{
			name: "parent that is a regular file counts as missing",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "data", "not a directory")
				return filepath.Join(dir, "data")
			},
		},
		{
			name: "symlink loop counts as missing",
			setup: func(t *testing.T) string {
				skipWithoutSymlinks(t)
				dir := t.TempDir()
				require.NoError(t, os.Symlink("actions-pushback.json", filepath.Join(dir, "actions-pushback.json")))
				return dir
			},
		},
		{
			name: "dangling symlink counts as missing",
			setup: func(t *testing.T) string {
				skipWithoutSymlinks(t)
				dir := t.TempDir()
				require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere.json"), filepath.Join(dir, "actions-pushback.json")))
				return dir
			},
		},
		{
			name: "unreadable parent directory is an error",
			setup: func(t *testing.T) string {
				if runtime.GOOS == "windows" || os.Geteuid() == 0 {
					t.Skip("permission bits are not enforced for this user")
				}
				dir := filepath.Join(t.TempDir(), "data")
				require.NoError(t, os.Mkdir(dir, 0o755))
				writeFile(t, dir, "actions-pushback.json", `{}`)
				require.NoError(t, os.Chmod(dir, 0o000))
				t.Cleanup(func() { os.Chmod(dir, 0o755) })
				return dir
			},
			errMsg: "checking",
		},
		{
			name: "invalid JSON is returned as an error",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "actions-pushback.json", "{not json")
				return dir
			},
			wantExists: true,
			errMsg:     "parsing",
		},
		{
			name: "directory in place of the file is an error",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(dir, "actions-pushback.json"), 0o755))
				return dir
			},
			wantExists: true,
			errMsg:     "reading",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Inspect(dir, "actions-pushback.json")
			assert.Equal(t, "actions-pushback.json", got.Name)
			assert.Equal(t, filepath.Join(dir, "actions-pushback.json"), got.Path)
			assert.Equal(t, tt.wantExists, got.Exists)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, got.Size)
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
}
