// Package validator binds a raw YAML mapping to a typed ArgoCD Application.
//
// Validation never stops at the first problem: every field is checked and
// all violations are returned together as Errors. Unknown fields are ignored
// at every level so newer manifests keep validating.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alevsk/argocd-migrate/internal/types"
)

// Messages used for common violations
const (
	MsgRequired = "field required"
	MsgEmpty    = "field cannot be empty or whitespace-only"
)

// Validate checks raw against the Application schema. On success it returns
// the application with defaults applied and required strings trimmed. On
// failure the returned error is of type Errors.
func Validate(raw map[string]any) (*types.Application, error) {
	c := &checker{}
	app := &types.Application{}

	app.APIVersion = c.literal(raw, "apiVersion", types.APIVersion)
	app.Kind = c.literal(raw, "kind", types.Kind)

	if meta, ok := c.requiredMap(raw, "metadata", ""); ok {
		app.Metadata = c.metadata(meta)
	}
	if spec, ok := c.requiredMap(raw, "spec", ""); ok {
		app.Spec = c.spec(spec)
	}

	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return app, nil
}

// IsApplication reports whether doc declares the supported apiVersion and kind
func IsApplication(doc map[string]any) bool {
	apiVersion, _ := doc["apiVersion"].(string)
	kind, _ := doc["kind"].(string)
	return apiVersion == types.APIVersion && kind == types.Kind
}

type checker struct {
	errs Errors
}

func (c *checker) fail(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) metadata(m map[string]any) types.Metadata {
	const prefix = "metadata"
	return types.Metadata{
		Name:        c.requiredString(m, "name", prefix),
		Namespace:   c.optionalString(m, "namespace", prefix, types.DefaultNamespace),
		Labels:      c.stringMap(m, "labels", prefix),
		Annotations: c.stringMap(m, "annotations", prefix),
	}
}

func (c *checker) spec(m map[string]any) types.Spec {
	const prefix = "spec"
	spec := types.Spec{
		Project: c.optionalString(m, "project", prefix, types.DefaultProject),
	}

	if src, ok := c.requiredMap(m, "source", prefix); ok {
		spec.Source = c.source(src)
	}
	if dst, ok := c.requiredMap(m, "destination", prefix); ok {
		spec.Destination = c.destination(dst)
	}

	if v, ok := lookup(m, "syncPolicy"); ok {
		if policy, isMap := asMap(v); isMap {
			spec.SyncPolicy = policy
		} else {
			c.fail("spec.syncPolicy", "must be a mapping, got %s", typeName(v))
		}
	}
	spec.IgnoreDifferences = c.list(m, "ignoreDifferences", prefix)
	spec.Info = c.list(m, "info", prefix)

	return spec
}

func (c *checker) source(m map[string]any) types.Source {
	const prefix = "spec.source"
	src := types.Source{
		RepoURL:        c.requiredString(m, "repoURL", prefix),
		TargetRevision: c.optionalString(m, "targetRevision", prefix, types.DefaultTargetRevision),
		Path:           c.choice(m, "path", prefix),
		Chart:          c.choice(m, "chart", prefix),
	}
	c.exactlyOne(prefix, "path", "chart", src.Path != nil, src.Chart != nil)
	return src
}

func (c *checker) destination(m map[string]any) types.Destination {
	const prefix = "spec.destination"
	dst := types.Destination{
		Namespace: c.requiredString(m, "namespace", prefix),
		Server:    c.choice(m, "server", prefix),
		Name:      c.choice(m, "name", prefix),
	}
	c.exactlyOne(prefix, "server", "name", dst.Server != nil, dst.Name != nil)
	return dst
}

// literal checks a required top-level string that must equal want
func (c *checker) literal(m map[string]any, key, want string) string {
	v, ok := lookup(m, key)
	if !ok {
		c.fail(key, MsgRequired)
		return ""
	}
	s, isString := v.(string)
	if !isString {
		c.fail(key, "must be a string, got %s", typeName(v))
		return ""
	}
	if s != want {
		c.fail(key, "invalid %s %q, expected %q", key, s, want)
	}
	return s
}

func (c *checker) requiredMap(m map[string]any, key, prefix string) (map[string]any, bool) {
	field := join(prefix, key)
	v, ok := lookup(m, key)
	if !ok {
		c.fail(field, MsgRequired)
		return nil, false
	}
	child, isMap := asMap(v)
	if !isMap {
		c.fail(field, "must be a mapping, got %s", typeName(v))
		return nil, false
	}
	return child, true
}

// requiredString returns the trimmed value of a string that must be present and non-blank
func (c *checker) requiredString(m map[string]any, key, prefix string) string {
	field := join(prefix, key)
	v, ok := lookup(m, key)
	if !ok {
		c.fail(field, MsgRequired)
		return ""
	}
	s, isString := v.(string)
	if !isString {
		c.fail(field, "must be a string, got %s", typeName(v))
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		c.fail(field, MsgEmpty)
	}
	return s
}

// optionalString returns the value as written, or def when the key is absent
func (c *checker) optionalString(m map[string]any, key, prefix, def string) string {
	v, ok := lookup(m, key)
	if !ok {
		return def
	}
	s, isString := v.(string)
	if !isString {
		c.fail(join(prefix, key), "must be a string, got %s", typeName(v))
		return def
	}
	return s
}

// choice returns one member of an exactly-one-of pair as written. Only a
// missing key or an explicit null counts as absent.
func (c *checker) choice(m map[string]any, key, prefix string) *string {
	v, ok := lookup(m, key)
	if !ok {
		return nil
	}
	s, isString := v.(string)
	if !isString {
		c.fail(join(prefix, key), "must be a string, got %s", typeName(v))
		return nil
	}
	return &s
}

func (c *checker) exactlyOne(prefix, a, b string, hasA, hasB bool) {
	switch {
	case !hasA && !hasB:
		c.fail(prefix, "must specify exactly one of '%s' or '%s', neither is set", a, b)
	case hasA && hasB:
		c.fail(prefix, "must specify exactly one of '%s' or '%s', both are set", a, b)
	}
}

func (c *checker) stringMap(m map[string]any, key, prefix string) map[string]string {
	field := join(prefix, key)
	out := map[string]string{}

	v, ok := lookup(m, key)
	if !ok {
		return out
	}
	raw, isMap := asMap(v)
	if !isMap {
		c.fail(field, "must be a mapping of strings, got %s", typeName(v))
		return out
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s, isString := raw[k].(string)
		if !isString {
			c.fail(join(field, k), "must be a string, got %s", typeName(raw[k]))
			continue
		}
		out[k] = s
	}
	return out
}

func (c *checker) list(m map[string]any, key, prefix string) []any {
	v, ok := lookup(m, key)
	if !ok {
		return nil
	}
	items, isList := v.([]any)
	if !isList {
		c.fail(join(prefix, key), "must be a list, got %s", typeName(v))
		return nil
	}
	return items
}

// lookup returns m[key], treating an explicit null like a missing key
func lookup(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
