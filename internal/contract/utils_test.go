package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rncdiscover/rnc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorRole(t *testing.T) {
	for _, role := range []schema.Role{schema.ControllerRole, schema.ServiceRole, schema.RepositoryRole, schema.GenericRole} {
		t.Run(string(role), func(t *testing.T) {
			assert.Contains(t, GetColorRole(role), string(role))
		})
	}
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "Yes", YesNo(true, false))
	assert.Equal(t, "No", YesNo(false, false))
	assert.Contains(t, YesNo(true, true), "Yes")
	assert.Contains(t, YesNo(false, true), "No")
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "summary.json")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		excludes   []string
		wantIgnore bool
	}{
		{
			name:       "empty excludes",
			path:       "src/main/java/App.java",
			excludes:   []string{},
			wantIgnore: false,
		},
		{
			name:       "prefix match",
			path:       "target/classes/App.class",
			excludes:   []string{"target/"},
			wantIgnore: true,
		},
		{
			name:       "suffix match",
			path:       "src/main/resources/app.properties.bak",
			excludes:   []string{".bak"},
			wantIgnore: true,
		},
		{
			name:       "glob match basename",
			path:       "src/test/java/OrderServiceTest.java",
			excludes:   []string{"*Test.java"},
			wantIgnore: true,
		},
		{
			name:       "substring match",
			path:       "src/generated/Model.java",
			excludes:   []string{"generated"},
			wantIgnore: true,
		},
		{
			name:       "no match",
			path:       "src/main/java/OrderService.java",
			excludes:   []string{"target/", "node_modules/", ".bak"},
			wantIgnore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIgnore, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".rnc_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.java", TruncatePath("short.java", 20))
	assert.Equal(t, "...ice.java", TruncatePath("com/acme/OrderService.java", 11))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseAutoBool(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := ParseAutoBool("auto", f)
	require.NoError(t, err)
	assert.False(t, got, "a regular file is never a terminal")

	got, err = ParseAutoBool("", f)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = ParseAutoBool("yes", f)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = ParseAutoBool("sometimes", f)
	assert.Error(t, err)

	assert.False(t, IsTerminal(nil))
}
