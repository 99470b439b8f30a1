// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NestedKey names the sub-mapping that holds fields not declared directly
// in the header.
const NestedKey = "metadata"

// Header is the parsed frontmatter of a skill document. It is read-only.
type Header struct {
	node   *yaml.Node
	values map[string]any
	// firstLine is the document line of the first header line.
	firstLine int
}

func newHeader(node *yaml.Node, firstLine int) (*Header, error) {
	values := map[string]any{}
	if err := node.Decode(&values); err != nil {
		return nil, errors.Wrap(err, "decoding frontmatter")
	}
	return &Header{node: node, values: values, firstLine: firstLine}, nil
}

// Direct returns the value declared at the top level of the header, or nil.
func (h *Header) Direct(field string) any {
	return h.values[field]
}

// Has reports whether field is declared at the top level, even as null.
func (h *Header) Has(field string) bool {
	_, ok := h.values[field]
	return ok
}

// Resolve looks field up at the top level first and then under the nested
// metadata mapping. It returns nil when neither location declares it. A
// top-level declaration wins even when its value is null.
func (h *Header) Resolve(field string) any {
	if v, ok := h.values[field]; ok {
		return v
	}
	if nested, ok := h.values[NestedKey].(map[string]any); ok {
		return nested[field]
	}
	return nil
}

// Line returns the document line where field is declared, checking the same
// locations as Resolve, or 0 if it is not declared.
func (h *Header) Line(field string) int {
	if key := mappingKey(h.node, field); key != nil {
		return h.firstLine + key.Line - 1
	}
	if nested := mappingValue(h.node, NestedKey); nested != nil && nested.Kind == yaml.MappingNode {
		if key := mappingKey(nested, field); key != nil {
			return h.firstLine + key.Line - 1
		}
	}
	return 0
}

// Scalar returns the source text of a scalar field, looked up like Resolve.
// It reports false when the field is absent, null or not a scalar.
func (h *Header) Scalar(field string) (string, bool) {
	n := mappingValue(h.node, field)
	if n == nil {
		if nested := mappingValue(h.node, NestedKey); nested != nil && nested.Kind == yaml.MappingNode {
			n = mappingValue(nested, field)
		}
	}
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return "", false
	}
	return n.Value, true
}

// Keys returns the top-level field names in ascending order.
func (h *Header) Keys() []string {
	keys := make([]string, 0, len(h.values))
	for k := range h.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mappingKey(m *yaml.Node, field string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == field {
			return m.Content[i]
		}
	}
	return nil
}

func mappingValue(m *yaml.Node, field string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == field {
			return m.Content[i+1]
		}
	}
	return nil
}

// Text renders a decoded YAML value as plain text. Lists are joined with
// spaces and dates keep their YYYY-MM-DD form.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, Text(e))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(t)
	}
}
