package confit_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Azhovan/confit"
)

func writeExample(dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Fatal(err)
	}
	return path
}

func Example() {
	dir, _ := os.MkdirTemp("", "confit-example")
	defer os.RemoveAll(dir)

	writeExample(dir, "conf.d/override.yaml", "server:\n  port: 9090\n")
	path := writeExample(dir, "app.conf", `name = "demo"

[server]
host = localhost
port = 8080
include = conf.d/*.yaml
`)

	store := confit.New("demo")
	if err := store.LoadFromFile(path); err != nil {
		log.Fatal(err)
	}

	fmt.Println(store.GetString(confit.DefaultSection, "name").OrDefault(""))
	fmt.Println(store.GetString("server", "host").OrDefault(""))
	fmt.Println(store.GetInteger("server", "port").OrDefault(0))
	// Output:
	// demo
	// localhost
	// 9090
}

func ExampleStore_Encode() {
	store := confit.New("demo").SetFormat(confit.FormatJSON)
	store.Set(confit.DefaultSection, "name", confit.Text("demo"))
	store.Set("server", "port", confit.Integer(8080))
	store.Set("server", "ratio", confit.Float(1))

	data, err := store.Encode()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
	// Output:
	// #!config/json
	// {
	//   "name": "demo",
	//   "server": {
	//     "port": 8080,
	//     "ratio": 1.0
	//   }
	// }
}

func ExampleDump() {
	store := confit.New("demo")
	store.Set("server", "port", confit.Integer(8080))
	store.Set("database", "password", confit.Text("hunter2"))

	if err := confit.Dump(os.Stdout, store, confit.WithRedacted("database.password")); err != nil {
		log.Fatal(err)
	}
	// Output:
	// database.password: ***redacted***
	// server.port: 8080
}

func ExampleStore_Unmarshal() {
	dir, _ := os.MkdirTemp("", "confit-example")
	defer os.RemoveAll(dir)

	path := writeExample(dir, "app.conf", "[server]\nport = 8080\ntimeout = 2m\n")

	store := confit.New("demo")
	if err := store.LoadFromFile(path); err != nil {
		log.Fatal(err)
	}

	var server struct {
		Port    int    `conf:"port"`
		Timeout string `conf:"timeout"`
	}
	if err := store.Unmarshal("server", &server); err != nil {
		log.Fatal(err)
	}
	fmt.Println(server.Port, server.Timeout)
	// Output:
	// 8080 2m
}

func ExampleLoader() {
	dir, _ := os.MkdirTemp("", "confit-example")
	defer os.RemoveAll(dir)

	path := writeExample(dir, "app.conf", "[server]\nport = 8080\n")

	store, err := confit.NewLoader("demo", path).
		WithValidator(confit.ValidatorFunc(func(s *confit.Store) error {
			if _, ok := s.GetInteger("server", "port").Get(); !ok {
				return fmt.Errorf("%w: server.port is not an integer", confit.ErrValidation)
			}
			return nil
		})).
		Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(store.GetInteger("server", "port").OrDefault(0))
	// Output:
	// 8080
}
