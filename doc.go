// Package confit loads, merges and saves application configuration written in
// ini, TOML, YAML or JSON, behind one typed value model.
//
// Quick Start:
//
//	store := confit.New("myapp")
//	if err := store.LoadFromFile("/etc/myapp.conf"); err != nil {
//	    log.Fatal(err)
//	}
//	port := store.GetInteger("server", "port").OrDefault(8080)
//
// The first line of a file selects its format: "#!config/toml",
// "#!config/yaml", "#!config/json" or "#!config/ini". Without it the file is
// read as ini:
//
//	name = "demo"          # keys before any header go to section "default"
//	[server]
//	port = 8080
//	include = conf.d/*.yaml
//
// Every format reserves a top-level "include" key holding a path, a glob
// pattern or a list of them. Included files are resolved relative to the
// including file, may use any format, and override earlier values.
//
// Validation lives in package schema, environment overlays in sourceenv and
// default file locations in sourcefile. Loader combines them and Watch reloads
// on change.
package confit
