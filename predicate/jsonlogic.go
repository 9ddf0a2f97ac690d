// Package predicate holds source-declared custom criteria (spec §9): a
// name-keyed Registry of criteria.Custom values, and CustomRef/Merge for
// resolving a by-name placeholder against that Registry. Custom criteria
// themselves are never deserialized, and the wire decoder does not use
// this package: it reattaches custom criteria by rule position from the
// schema's source definitions.
//
// FromJSONLogic is the one concrete way to build such a source-declared
// predicate without hand-writing a Go closure: it compiles a JSON Logic
// expression (jsonlogic.com) into a criteria.Custom, evaluated against a
// flattened view of criteria.Context.
package predicate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/diegoholiveira/jsonlogic/v3"

	"github.com/konditional-dev/konditional/criteria"
)

// ErrEmptyExpression is returned for a blank JSON Logic expression.
var ErrEmptyExpression = errors.New("predicate: empty jsonlogic expression")

// ErrInvalidExpression is returned when an expression is not valid JSON
// or not valid JSON Logic.
var ErrInvalidExpression = errors.New("predicate: invalid jsonlogic expression")

// FromJSONLogic compiles expression into a criteria.Custom named name,
// carrying declaredSpecificity as its Specificity() (spec §4.2: a custom
// criterion's specificity is author-declared, not derived).
func FromJSONLogic(name, expression string, declaredSpecificity int) (criteria.Custom, error) {
	if err := ValidateExpression(expression); err != nil {
		return criteria.Custom{}, err
	}
	pred := func(ctx criteria.Context) bool {
		ok, err := evaluateJSONLogic(expression, ctx)
		return err == nil && ok
	}
	return criteria.Custom{Name: name, Pred: pred, DeclaredSpecificity: declaredSpecificity}, nil
}

// ValidateExpression reports whether expression is non-blank, valid
// JSON, and valid JSON Logic, without evaluating it against real data.
func ValidateExpression(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return ErrEmptyExpression
	}
	var rule any
	if err := json.Unmarshal([]byte(expression), &rule); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	if _, err := applyJSONLogic(expression, "{}"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return nil
}

func evaluateJSONLogic(expression string, ctx criteria.Context) (bool, error) {
	data, err := json.Marshal(contextToMap(ctx))
	if err != nil {
		return false, err
	}
	result, err := applyJSONLogic(expression, string(data))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return isTruthy(result), nil
}

func applyJSONLogic(expression, data string) (any, error) {
	ruleReader := strings.NewReader(expression)
	dataReader := strings.NewReader(data)
	var out bytes.Buffer
	if err := jsonlogic.Apply(ruleReader, dataReader, &out); err != nil {
		return nil, err
	}
	var result any
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

// contextToMap flattens a criteria.Context into the shape JSON Logic
// expressions address via {"var": "..."}.
func contextToMap(ctx criteria.Context) map[string]any {
	m := map[string]any{
		"locale":     ctx.LocaleTag,
		"platform":   ctx.PlatformTag,
		"appVersion": ctx.AppVersion.String(),
		"stableId":   ctx.StableID.Hex(),
	}
	if len(ctx.Axes) > 0 {
		axes := make(map[string]any, len(ctx.Axes))
		for k, v := range ctx.Axes {
			axes[k] = v
		}
		m["axes"] = axes
	}
	return m
}

// isTruthy applies JSON Logic's JavaScript-like truthiness rules to a
// decoded result.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
