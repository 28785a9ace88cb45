// Package sourcefile finds configuration files in their default locations
// and merges extra files over a loaded confit.Store.
//
// Example:
//
//	store := confit.New("myapp")
//	path, err := sourcefile.Load(store, sourcefile.Options{})
//
//	loader := confit.NewLoader("myapp", path).
//		WithSource(sourcefile.New("/etc/myapp/local.conf", sourcefile.Options{}))
package sourcefile
