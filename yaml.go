package confit

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

func parseYAML(s *Store, content, path string, chain []string) error {
	var doc any
	if err := yaml.Unmarshal([]byte(stripShebang(content)), &doc); err != nil {
		return fmt.Errorf("%w: parse YAML file %s: %w", ErrParse, path, err)
	}
	if doc == nil {
		return nil
	}

	root, ok := asStringMap(doc)
	if !ok {
		return fmt.Errorf("%w: parse YAML file %s: root must be a mapping, got %T", ErrParse, path, doc)
	}
	return s.mergeTree(root, path, FormatYAML, chain)
}

// encodeYAML builds the document as nodes rather than plain maps so that
// whole floats keep their float tag and keys come out sorted.
func encodeYAML(s *Store) ([]byte, error) {
	root, err := documentRoot(s, yamlNode, yamlMapping)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(shebangPrefix + FormatYAML.String() + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlMapping(root)); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlNode(v Value) *yaml.Node {
	switch v.Kind() {
	case KindInteger:
		i, _ := v.AsInteger()
		return yamlScalar("!!int", strconv.FormatInt(i, 10))
	case KindFloat:
		f, _ := v.AsFloat()
		return yamlScalar("!!float", yamlFloat(f))
	case KindBoolean:
		b, _ := v.AsBoolean()
		return yamlScalar("!!bool", strconv.FormatBool(b))
	case KindList:
		items, _ := v.AsList()
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			seq.Content = append(seq.Content, yamlNode(item))
		}
		return seq
	case KindMap:
		entries, _ := v.AsMap()
		nodes := make(map[string]*yaml.Node, len(entries))
		for k, item := range entries {
			nodes[k] = yamlNode(item)
		}
		return yamlMapping(nodes)
	default:
		str, _ := v.AsString()
		return yamlScalar("!!str", str)
	}
}

func yamlMapping(entries map[string]*yaml.Node) *yaml.Node {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range keys {
		m.Content = append(m.Content, yamlScalar("!!str", k), entries[k])
	}
	return m
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return formatFloat(f)
}
