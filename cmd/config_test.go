package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(DefaultConfigFile, []byte(`{
		// shared settings
		"store": "from-file",
		"shareOrigin": "https://cost.example.com",
		"sharePath": "/sheet", // trailing comma below
	}`), 0o644))

	testCases := []struct {
		name    string
		environ map[string]string
		flags   map[string]string
		want    Config
	}{
		{
			name: "file",
			want: Config{Store: "from-file", Backend: BackendFile, ShareOrigin: "https://cost.example.com", SharePath: "/sheet"},
		},
		{
			name:    "environment over file",
			environ: map[string]string{EnvStore: "from-env", EnvBackend: BackendSQLite, EnvVerbose: "true"},
			want:    Config{Store: "from-env", Backend: BackendSQLite, ShareOrigin: "https://cost.example.com", SharePath: "/sheet", Verbose: true},
		},
		{
			name:    "flags over environment",
			environ: map[string]string{EnvStore: "from-env", EnvSharePath: "/env"},
			flags:   map[string]string{"store": "from-flag", "v": "true", "test.v": "true"},
			want:    Config{Store: "from-flag", Backend: BackendFile, ShareOrigin: "https://cost.example.com", SharePath: "/env", Verbose: true},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := loadConfig("", tc.environ, tc.flags)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("loadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	got, err := loadConfig("", nil, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), got)
	require.Equal(t, ".cst", got.StorePath())

	got.Backend = BackendSQLite
	require.Equal(t, ".cst.db", got.StorePath())
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := loadConfig(filepath.Join(dir, "missing.json"), nil, nil)
	require.Error(t, err, "an explicit config file must exist")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"stor": "typo"}`), 0o644))
	_, err = loadConfig(bad, nil, nil)
	require.ErrorContains(t, err, "stor")

	_, err = loadConfig("", map[string]string{EnvBackend: "postgres"}, nil)
	require.ErrorContains(t, err, "postgres")

	_, err = loadConfig("", map[string]string{EnvVerbose: "maybe"}, nil)
	require.Error(t, err)
}
