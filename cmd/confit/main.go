// Command confit inspects, converts and validates configuration files.
//
// Usage:
//
//	# Print one value
//	confit get app.conf server.port
//
//	# Print every value with its origin
//	confit dump app.conf --sources
//
//	# Rewrite an ini file as YAML
//	confit convert app.conf app.yaml --to yaml
//
//	# Check that required keys are present
//	confit validate app.conf --require server.port --require database.url
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
