package command

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/acronis/go-scoop/pkg/testsupp"
)

func newCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	AddConfigFlags(cmd)
	AddBucketFlag(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func Test_LoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github:\n  token: from-file\nmanifest:\n  branch: main\n"), 0o600))

	cfg, err := LoadConfig(newCommand(t, "--config", path))
	require.NoError(t, err)
	require.Equal(t, "from-file", cfg.GitHub.Token)
	require.Equal(t, "main", cfg.Manifest.Branch)

	cfg, err = LoadConfig(newCommand(t, "-c", path, "--github-token", "from-flag"))
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.GitHub.Token)

	_, err = LoadConfig(newCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}

func Test_GetBucket(t *testing.T) {
	bucket, err := GetBucket(newCommand(t, "-b", "extras"))
	require.NoError(t, err)
	require.Equal(t, "extras", bucket)

	bucket, err = GetBucket(newCommand(t))
	require.NoError(t, err)
	require.Empty(t, bucket)
}

func Test_InitializeService(t *testing.T) {
	testsupp.InitLog(t)

	srv := testsupp.NewRawServer(t, map[string]string{
		"me/index/main/list.json":                   `{"tools": "https://github.com/me/tools"}`,
		"me/tools/main/bucket/hello.json":           `{"version": "1.2.3"}`,
		"ScoopInstaller/Scoop/master/buckets.json":  `{}`,
		"ScoopInstaller/Main/master/bucket/git.json": `{"version": "0"}`,
	})
	path := filepath.Join(t.TempDir(), "scoop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
github:
  base_url: `+srv.URL+`
index:
  user: me
  repo: index
  branch: main
  file: list.json
manifest:
  branch: main
`), 0o600))

	svc, err := InitializeService(newCommand(t, "--config", path))
	require.NoError(t, err)

	version, err := svc.Version(context.Background(), "hello", "tools")
	require.NoError(t, err)
	require.Equal(t, "1.2.3", version)
	require.Equal(t, 2, srv.Requests())
}

func Test_WrapError(t *testing.T) {
	require.NoError(t, WrapError(nil))

	inner := errors.New("boom")
	err := WrapError(inner)
	var cmdErr *Error
	require.ErrorAs(t, err, &cmdErr)
	require.ErrorIs(t, err, inner)
	require.Equal(t, "command failed: boom", err.Error())

	err = Wrap("load config", inner)
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "load config", cmdErr.Msg)
	require.Equal(t, "load config: boom", err.Error())
	require.NoError(t, Wrap("load config", nil))
}
