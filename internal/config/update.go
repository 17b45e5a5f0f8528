package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AddBackend appends a backend URL to balancer.backends in the config file.
// It preserves the existing YAML structure and comments. If the backend is
// already listed, ignoring trailing slashes, it does nothing and returns
// false. The URL is stored without a trailing slash.
func AddBackend(configPath, backend string) (bool, error) {
	backend = NormalizeBackend(backend)
	root, err := readNode(configPath)
	if err != nil {
		return false, err
	}

	docNode := root.Content[0]
	balancerNode := findOrCreateMap(docNode, "balancer", yaml.MappingNode, "!!map")
	backendsNode := findOrCreateMap(balancerNode, "backends", yaml.SequenceNode, "!!seq")

	for _, item := range backendsNode.Content {
		if item.Kind == yaml.ScalarNode && NormalizeBackend(item.Value) == backend {
			return false, nil
		}
	}

	backendsNode.Content = append(backendsNode.Content, &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: backend,
	})

	return true, writeNode(configPath, root)
}

// RemoveBackend drops a backend URL from balancer.backends. Returns false
// when the backend was not listed. Trailing slashes are ignored when matching.
func RemoveBackend(configPath, backend string) (bool, error) {
	backend = NormalizeBackend(backend)
	root, err := readNode(configPath)
	if err != nil {
		return false, err
	}

	balancerNode := findMapValue(root.Content[0], "balancer")
	backendsNode := findMapValue(balancerNode, "backends")
	if backendsNode == nil || backendsNode.Kind != yaml.SequenceNode {
		return false, nil
	}

	kept := backendsNode.Content[:0]
	removed := false
	for _, item := range backendsNode.Content {
		if item.Kind == yaml.ScalarNode && NormalizeBackend(item.Value) == backend {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return false, nil
	}
	backendsNode.Content = kept

	return true, writeNode(configPath, root)
}

func readNode(configPath string) (*yaml.Node, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("invalid YAML document structure")
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at document root")
	}

	return &root, nil
}

func writeNode(configPath string, root *yaml.Node) error {
	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	encoder.Close()

	if err := os.WriteFile(configPath, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.Value == key {
			return valueNode
		}
	}

	return nil
}

// findOrCreateMap returns the value under key, adding an empty node of the
// given kind when the key is missing or null.
func findOrCreateMap(node *yaml.Node, key string, kind yaml.Kind, tag string) *yaml.Node {
	if v := findMapValue(node, key); v != nil {
		if v.Kind == kind {
			return v
		}
		// "backends:" with no value parses as a null scalar
		v.Kind, v.Tag, v.Value, v.Style = kind, tag, "", 0
		return v
	}

	v := &yaml.Node{Kind: kind, Tag: tag}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		v,
	)
	return v
}
