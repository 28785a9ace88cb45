// Package sourceenv overlays environment variables onto a confit.Store.
//
// Key normalization: APP_SERVER__PORT → section "server", key "port";
// APP_DEBUG → section "default", key "debug".
//
// Example:
//
//	loader := confit.NewLoader("app", "/etc/app.conf").
//		WithSource(sourceenv.New(sourceenv.Options{Prefix: "APP_"}))
package sourceenv
