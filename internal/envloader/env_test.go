package envloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		line      string
		key, want string
		ok        bool
	}{
		{"BACKEND_URL=http://api:8000", "BACKEND_URL", "http://api:8000", true},
		{"  export DEFAULT_LANG = ja ", "DEFAULT_LANG", "ja", true},
		{`ADMIN_PASSWORD="s3cr#t"`, "ADMIN_PASSWORD", "s3cr#t", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"NOEQUALS", "", "", false},
		{"=value", "", "", false},
	}
	for _, tc := range cases {
		key, value, ok := parseLine(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		assert.Equal(t, tc.key, key, tc.line)
		assert.Equal(t, tc.want, value, tc.line)
	}
}

func TestLoadDotEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MENUGUIDE_TEST_A=file\nMENUGUIDE_TEST_B=file\n"), 0o600))

	t.Setenv("MENUGUIDE_TEST_A", "env")
	t.Setenv("MENUGUIDE_TEST_B", "")
	require.NoError(t, os.Unsetenv("MENUGUIDE_TEST_B"))

	assert.Equal(t, 1, LoadDotEnv(path))
	assert.Equal(t, "env", os.Getenv("MENUGUIDE_TEST_A"))
	assert.Equal(t, "file", os.Getenv("MENUGUIDE_TEST_B"))
	os.Unsetenv("MENUGUIDE_TEST_B")
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	assert.Equal(t, 0, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
