package confit

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dumpStore() *Store {
	s := New("test")
	s.SetWithOrigin("server", "port", Integer(8080), "app.conf")
	s.SetWithOrigin("server", "host", Text("localhost"), "app.conf")
	s.SetWithOrigin("database", "password", Text("hunter2"), "env:APP_DATABASE__PASSWORD")
	s.SetWithOrigin("server", "ratio", Float(1), OriginDefault)
	return s
}

func TestDump_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, dumpStore()))

	assert.Equal(t, `database.password: "hunter2"
server.host: "localhost"
server.port: 8080
server.ratio: 1.0
`, buf.String())
}

func TestDump_TextWithSources(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, dumpStore(), WithSources(), WithRedacted("DATABASE.Password")))

	assert.Equal(t, `database.password: ***redacted*** (source: env:APP_DATABASE__PASSWORD)
server.host: "localhost" (source: app.conf)
server.port: 8080 (source: app.conf)
server.ratio: 1.0 (source: default)
`, buf.String())
}

func TestDump_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, dumpStore(), AsJSON(), WithIndent("")))

	assert.Equal(t, `{"database":{"password":"hunter2"},"server":{"host":"localhost","port":8080,"ratio":1.0}}`+"\n", buf.String())
}

func TestDump_JSONWithSources(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, dumpStore(), AsJSON(), WithSources(), WithRedacted("database.password")))

	var out map[string]map[string]struct {
		Value  any    `json:"value"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "***redacted***", out["database"]["password"].Value)
	assert.Equal(t, "env:APP_DATABASE__PASSWORD", out["database"]["password"].Source)
	assert.Equal(t, float64(8080), out["server"]["port"].Value)
	assert.Equal(t, "app.conf", out["server"]["port"].Source)
}

func TestDump_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, New("test")))
	assert.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, Dump(&buf, New("test"), AsJSON()))
	assert.Equal(t, "{}\n", buf.String())
}

func TestDump_NilStore(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Dump(&buf, nil))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDump_WriteError(t *testing.T) {
	err := Dump(failingWriter{}, dumpStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = Dump(failingWriter{}, dumpStore(), AsJSON())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
