// Package manifest loads a single YAML document from disk and checks that it
// has the shape of a Kubernetes object: exactly one document whose top level
// is a mapping.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// Reasons reported by DocumentError
const (
	ReasonZeroDocuments = "zero documents"
	ReasonMultiDocument = "multi-document"
	ReasonEmpty         = "empty document"
	ReasonNotMapping    = "not a mapping"
)

// DocumentError is returned when a file parses but does not contain exactly
// one mapping document
type DocumentError struct {
	Reason  string
	Message string
}

func (e *DocumentError) Error() string {
	return e.Message
}

// SyntaxError is returned when the file is not well-formed YAML
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid YAML in %s: %v", e.Path, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Load reads the file at path and returns its only document as a mapping.
// Errors from reading the file are returned as-is so callers can test them
// with errors.Is(err, fs.ErrNotExist).
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, path)
}

// LoadBytes parses data as a single YAML mapping document.
// The source parameter is used only for error messages.
func LoadBytes(data []byte, source string) (map[string]any, error) {
	docs, err := decodeAll(data)
	if err != nil {
		return nil, &SyntaxError{Path: source, Err: err}
	}

	switch len(docs) {
	case 0:
		return nil, &DocumentError{
			Reason:  ReasonZeroDocuments,
			Message: "File contains 0 YAML documents. Expected exactly 1 document.",
		}
	case 1:
	default:
		return nil, &DocumentError{
			Reason: ReasonMultiDocument,
			Message: fmt.Sprintf("File contains %d YAML documents. Expected exactly 1 document. "+
				"Multi-document YAML files are not supported.", len(docs)),
		}
	}

	root := docs[0]
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	for root.Kind == yaml.AliasNode && root.Alias != nil {
		root = root.Alias
	}

	if isNull(root) {
		return nil, &DocumentError{
			Reason:  ReasonEmpty,
			Message: "File contains an empty YAML document. Expected a valid ArgoCD Application manifest.",
		}
	}
	if root.Kind != yaml.MappingNode {
		return nil, &DocumentError{
			Reason:  ReasonNotMapping,
			Message: fmt.Sprintf("Expected YAML document to be a mapping, got %s", kindName(root)),
		}
	}

	var obj map[string]any
	if err := root.Decode(&obj); err != nil {
		return nil, &SyntaxError{Path: source, Err: err}
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

// decodeAll decodes every document in data without interpreting it
func decodeAll(data []byte) ([]*yaml.Node, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*yaml.Node
	for {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, &node)
	}
	return docs, nil
}

func isNull(n *yaml.Node) bool {
	if n.Kind == yaml.DocumentNode {
		return len(n.Content) == 0
	}
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return "string"
		case "!!int":
			return "integer"
		case "!!float":
			return "float"
		case "!!bool":
			return "boolean"
		}
		return "scalar"
	default:
		return fmt.Sprintf("node kind %d", n.Kind)
	}
}
