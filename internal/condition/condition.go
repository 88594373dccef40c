// Package condition evaluates JSON condition trees against JSON documents.
//
// A node is one of
//
//	{"all": [node, ...]}
//	{"any": [node, ...]}
//	{"not": node}
//	{"field": "custom_fields.industry", "operator": "equals", "value": "saas"}
//
// Fields are gjson paths into the subject document.
package condition

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const MaxDepth = 10

var (
	ErrInvalidCondition = errors.New("invalid condition")
	ErrTooDeep          = errors.New("condition nesting too deep")
)

type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpRegex       Operator = "regex"
	OpIsEmpty     Operator = "is_empty"
)

func (o Operator) Valid() bool {
	switch o {
	case OpEquals, OpNotEquals, OpContains, OpNotContains, OpStartsWith, OpEndsWith,
		OpGreaterThan, OpLessThan, OpRegex, OpIsEmpty:
		return true
	}
	return false
}

type Node struct {
	All      []Node   `json:"all,omitempty"`
	Any      []Node   `json:"any,omitempty"`
	Not      *Node    `json:"not,omitempty"`
	Field    string   `json:"field,omitempty"`
	Operator Operator `json:"operator,omitempty"`
	Value    any      `json:"value,omitempty"`
}

func (n *Node) isLeaf() bool {
	return n.All == nil && n.Any == nil && n.Not == nil
}

// Parse decodes a condition tree. Empty input, null and {} yield a nil node,
// which matches every document.
func Parse(raw []byte) (*Node, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "{}" {
		return nil, nil
	}
	var n Node
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}
	return &n, nil
}

// Validate checks operators, regex patterns and nesting depth.
func Validate(n *Node) error {
	if n == nil {
		return nil
	}
	return validate(n, 1)
}

func validate(n *Node, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}

	branches := 0
	if n.All != nil {
		branches++
	}
	if n.Any != nil {
		branches++
	}
	if n.Not != nil {
		branches++
	}
	if branches > 1 || (branches == 1 && n.Field != "") {
		return fmt.Errorf("%w: node mixes all/any/not/field", ErrInvalidCondition)
	}

	switch {
	case n.All != nil:
		return validateChildren(n.All, depth)
	case n.Any != nil:
		return validateChildren(n.Any, depth)
	case n.Not != nil:
		return validate(n.Not, depth+1)
	}

	if n.Field == "" {
		return fmt.Errorf("%w: field is required", ErrInvalidCondition)
	}
	if !n.Operator.Valid() {
		return fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, n.Operator)
	}
	if n.Operator == OpRegex {
		pattern, ok := n.Value.(string)
		if !ok {
			return fmt.Errorf("%w: regex value must be a string", ErrInvalidCondition)
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%w: bad regex: %v", ErrInvalidCondition, err)
		}
	}
	return nil
}

func validateChildren(nodes []Node, depth int) error {
	for i := range nodes {
		if err := validate(&nodes[i], depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate reports whether doc satisfies n. A nil node matches.
func Evaluate(n *Node, doc []byte) (bool, error) {
	if n == nil {
		return true, nil
	}
	return evaluate(n, doc, 1)
}

// Match parses raw and evaluates it against doc.
func Match(raw []byte, doc []byte) (bool, error) {
	n, err := Parse(raw)
	if err != nil {
		return false, err
	}
	return Evaluate(n, doc)
}

func evaluate(n *Node, doc []byte, depth int) (bool, error) {
	if depth > MaxDepth {
		return false, ErrTooDeep
	}

	switch {
	case n.All != nil:
		for i := range n.All {
			ok, err := evaluate(&n.All[i], doc, depth+1)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case n.Any != nil:
		for i := range n.Any {
			ok, err := evaluate(&n.Any[i], doc, depth+1)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case n.Not != nil:
		ok, err := evaluate(n.Not, doc, depth+1)
		return !ok, err
	}

	return evaluateLeaf(n, gjson.GetBytes(doc, n.Field))
}

func evaluateLeaf(n *Node, res gjson.Result) (bool, error) {
	switch n.Operator {
	case OpIsEmpty:
		want := true
		if b, ok := n.Value.(bool); ok {
			want = b
		}
		return isEmpty(res) == want, nil
	case OpEquals:
		return equals(res, n.Value), nil
	case OpNotEquals:
		return !equals(res, n.Value), nil
	case OpContains:
		return contains(res, n.Value), nil
	case OpNotContains:
		return !contains(res, n.Value), nil
	case OpStartsWith:
		return res.Exists() && strings.HasPrefix(strings.ToLower(res.String()), strings.ToLower(valueString(n.Value))), nil
	case OpEndsWith:
		return res.Exists() && strings.HasSuffix(strings.ToLower(res.String()), strings.ToLower(valueString(n.Value))), nil
	case OpGreaterThan, OpLessThan:
		left, ok := resultNumber(res)
		if !ok {
			return false, nil
		}
		right, ok := valueNumber(n.Value)
		if !ok {
			return false, nil
		}
		if n.Operator == OpGreaterThan {
			return left > right, nil
		}
		return left < right, nil
	case OpRegex:
		pattern, ok := n.Value.(string)
		if !ok {
			return false, fmt.Errorf("%w: regex value must be a string", ErrInvalidCondition)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("%w: bad regex: %v", ErrInvalidCondition, err)
		}
		return res.Exists() && re.MatchString(res.String()), nil
	}
	return false, fmt.Errorf("%w: unknown operator %q", ErrInvalidCondition, n.Operator)
}

func isEmpty(res gjson.Result) bool {
	switch {
	case !res.Exists(), res.Type == gjson.Null:
		return true
	case res.IsArray():
		return len(res.Array()) == 0
	case res.IsObject():
		return len(res.Map()) == 0
	case res.Type == gjson.String:
		return strings.TrimSpace(res.Str) == ""
	}
	return false
}

func equals(res gjson.Result, value any) bool {
	if !res.Exists() {
		return value == nil
	}
	if res.IsArray() {
		for _, item := range res.Array() {
			if scalarEquals(item, value) {
				return true
			}
		}
		return false
	}
	return scalarEquals(res, value)
}

func scalarEquals(res gjson.Result, value any) bool {
	switch v := value.(type) {
	case nil:
		return res.Type == gjson.Null
	case bool:
		return (res.Type == gjson.True || res.Type == gjson.False) && res.Bool() == v
	case float64:
		n, ok := resultNumber(res)
		return ok && n == v
	}
	return strings.EqualFold(res.String(), valueString(value))
}

func contains(res gjson.Result, value any) bool {
	if !res.Exists() {
		return false
	}
	if res.IsArray() {
		for _, item := range res.Array() {
			if scalarEquals(item, value) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(res.String()), strings.ToLower(valueString(value)))
}

func resultNumber(res gjson.Result) (float64, bool) {
	switch res.Type {
	case gjson.Number:
		return res.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(res.Str), 64)
		return f, err == nil
	}
	return 0, false
}

func valueNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
