package confit

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
)

// defaultFileMode is used when SaveToFile creates a new file.
const defaultFileMode fs.FileMode = 0o644

// Snapshot returns a deep copy of the store: values, origins, file list and
// metadata. Mutating the copy never affects s.
func (s *Store) Snapshot() *Store {
	out := &Store{
		appName: s.appName,
		values:  make(map[string]map[string]Value, len(s.values)),
		origins: make(map[string]map[string]string, len(s.origins)),
		files:   s.Files(),
		format:  s.format,
		path:    s.path,
		logger:  s.logger,
	}
	for section, values := range s.values {
		copied := make(map[string]Value, len(values))
		for k, v := range values {
			copied[k] = v.Clone()
		}
		out.values[section] = copied
	}
	for section, origins := range s.origins {
		copied := make(map[string]string, len(origins))
		for k, o := range origins {
			copied[k] = o
		}
		out.origins[section] = copied
	}
	return out
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path. An existing file keeps its permission bits.
func writeFileAtomic(path string, data []byte) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return &fs.PathError{Op: "write", Path: path, Err: errors.New("is a directory")}
		}
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	tempPath, err := generateTempFileName(path)
	if err != nil {
		return err
	}

	var tempFileCreated bool
	defer func() {
		if tempFileCreated {
			_ = os.Remove(tempPath)
		}
	}()

	if err := os.WriteFile(tempPath, data, mode); err != nil {
		return err
	}
	tempFileCreated = true

	// WriteFile applies the umask.
	if err := os.Chmod(tempPath, mode); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		return err
	}
	tempFileCreated = false

	return nil
}

// generateTempFileName returns path + ".tmp." + 16 random hex chars. The temp
// file lives in the target's directory so the rename stays on one filesystem.
func generateTempFileName(targetPath string) (string, error) {
	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	return targetPath + ".tmp." + hex.EncodeToString(randomBytes), nil
}
