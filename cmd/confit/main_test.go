package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Azhovan/confit"
	"github.com/Azhovan/confit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConf = `# sample
name = "demo"
debug = yes

[server]
host = "localhost"
port = 8080
ratio = 0.75

[database]
password = "hunter2"
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.conf")
	require.NoError(t, os.WriteFile(path, []byte(sampleConf), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGet(t *testing.T) {
	path := writeSample(t)

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "integer", key: "server.port", want: "8080\n"},
		{name: "text is unquoted", key: "server.host", want: "localhost\n"},
		{name: "float", key: "server.ratio", want: "0.75\n"},
		{name: "default section", key: "debug", want: "true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "get", path, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	path := writeSample(t)

	_, err := run(t, "get", path, "server.nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.nope")
}

func TestGet_EnvOverlay(t *testing.T) {
	path := writeSample(t)
	t.Setenv("CFCLI_SERVER__PORT", "9999")

	out, err := run(t, "--env-prefix", "CFCLI_", "get", path, "server.port")
	require.NoError(t, err)
	assert.Equal(t, "9999\n", out)
}

func TestDump(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "dump", path, "--redact", "database.password")
	require.NoError(t, err)

	assert.Equal(t, `database.password: ***redacted***
default.debug: true
default.name: "demo"
server.host: "localhost"
server.port: 8080
server.ratio: 0.75
`, out)
}

func TestDump_Sources(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "dump", path, "--sources")
	require.NoError(t, err)
	assert.Contains(t, out, "server.port: 8080 (source: "+path+")")
}

func TestConvert(t *testing.T) {
	path := writeSample(t)

	for _, format := range []string{"toml", "yaml", "json", "ini"} {
		t.Run(format, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out."+format)
			_, err := run(t, "convert", path, out, "--to", format)
			require.NoError(t, err)

			store := confit.New("test")
			require.NoError(t, store.LoadFromFile(out))
			assert.Equal(t, confit.ParseFormat(format), store.Format())
			assert.Equal(t, int64(8080), store.GetInteger("server", "port").OrDefault(0))
			assert.Equal(t, 0.75, store.GetFloat("server", "ratio").OrDefault(0))
			assert.Equal(t, "demo", store.GetString(confit.DefaultSection, "name").OrDefault(""))
			assert.True(t, store.GetBoolean(confit.DefaultSection, "debug").OrDefault(false))
		})
	}
}

func TestConvert_UnknownFormat(t *testing.T) {
	path := writeSample(t)

	_, err := run(t, "convert", path, filepath.Join(t.TempDir(), "out"), "--to", "xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, confit.ErrUnsupportedFormat))
}

func TestValidate(t *testing.T) {
	path := writeSample(t)

	out, err := run(t, "validate", path, "--require", "server.port", "--require", "database.password")
	require.NoError(t, err)
	assert.Equal(t, path+": ok\n", out)
}

func TestValidate_ReportsEveryFailure(t *testing.T) {
	path := writeSample(t)

	_, err := run(t, "validate", path,
		"--require", "server.tls",
		"--require", "database.url",
		"--section", "cache",
	)
	require.Error(t, err)

	var verr *schema.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		schema.ErrCodeMissingSection,
		schema.ErrCodeMissingField,
		schema.ErrCodeMissingField,
	}, verr.Codes())
	assert.Equal(t, "cache", verr.FieldErrors[0].FieldPath)
	assert.Equal(t, "database.url", verr.FieldErrors[1].FieldPath)
	assert.Equal(t, "server.tls", verr.FieldErrors[2].FieldPath)
}

func TestValidate_Strict(t *testing.T) {
	path := writeSample(t)

	_, err := run(t, "validate", path, "--section", "server", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_section")
}

func TestGet_FileOverlay(t *testing.T) {
	path := writeSample(t)
	overlay := filepath.Join(t.TempDir(), "local.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("server:\n  port: 7070\n"), 0644))

	out, err := run(t, "--overlay", overlay, "--overlay", filepath.Join(t.TempDir(), "missing.conf"), "get", path, "server.port")
	require.NoError(t, err)
	assert.Equal(t, "7070\n", out)
}

func TestPaths(t *testing.T) {
	root := t.TempDir()
	home := t.TempDir()
	execDir := t.TempDir()
	found := filepath.Join(home, ".config", "myapp.conf")
	require.NoError(t, os.MkdirAll(filepath.Dir(found), 0755))
	require.NoError(t, os.WriteFile(found, []byte("a = 2\n"), 0644))

	out, err := run(t, "--app", "myapp", "paths", "--root", root, "--home", home, "--exec-dir", execDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc", "myapp", "myapp.conf")+"\n"+
		filepath.Join(root, "etc", "myapp.conf")+"\n"+
		filepath.Join(root, "opt", "etc", "myapp.conf")+"\n"+
		filepath.Join(home, ".config", "myapp", "myapp.conf")+"\n"+
		found+"\n"+
		filepath.Join(execDir, "myapp.conf")+"\n"+
		"using "+found+"\n", out)
}

func TestPaths_NotFound(t *testing.T) {
	out, err := run(t, "--app", "myapp", "paths", "--root", t.TempDir(), "--home", t.TempDir(), "--exec-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "no configuration file found\n")
}

func TestWatch_PrintsInitialSnapshot(t *testing.T) {
	path := writeSample(t)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"watch", path})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.Contains(t, out.String(), "# version 1 (initial)\ndatabase.password: \"hunter2\"\n")
}
