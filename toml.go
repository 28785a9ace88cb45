package confit

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

func parseTOML(s *Store, content, path string, chain []string) error {
	var root map[string]any
	if err := toml.Unmarshal([]byte(stripShebang(content)), &root); err != nil {
		return fmt.Errorf("%w: parse TOML file %s: %w", ErrParse, path, err)
	}
	return s.mergeTree(root, path, FormatTOML, chain)
}

func encodeTOML(s *Store) ([]byte, error) {
	root, err := documentRoot(s, Value.Interface, func(m map[string]any) any { return m })
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(shebangPrefix + FormatTOML.String() + "\n")
	if err := toml.NewEncoder(&buf).Encode(root); err != nil {
		return nil, fmt.Errorf("encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}
