// Package query projects collected log events with JMESPath.
package query

import (
	"encoding/json"

	"github.com/jmespath/go-jmespath"
	"github.com/pkg/errors"

	"github.com/Nao-Mk2/aws-lambda-log-collector/internal/model"
)

// Query is a compiled JMESPath expression evaluated against the logs output.
type Query struct {
	expr string
	jp   *jmespath.JMESPath
}

// Compile parses expr.
func Compile(expr string) (*Query, error) {
	jp, err := jmespath.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid JMESPath expression %q", expr)
	}
	return &Query{expr: expr, jp: jp}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.expr }

// Apply evaluates the expression against a logs payload (a JSON array of
// events) and returns the encoded result. Event messages holding a JSON
// document are decoded in place first, so expressions can reach into them;
// other messages stay strings. An unavailable payload is returned unchanged.
func (q *Query) Apply(p model.Payload) (model.Payload, error) {
	if !p.Available() {
		return p, nil
	}
	var doc any
	if err := json.Unmarshal(p, &doc); err != nil {
		return nil, errors.Wrap(err, "decode logs payload")
	}
	if events, ok := doc.([]any); ok {
		for _, e := range events {
			expandMessage(e)
		}
	}
	res, err := q.jp.Search(doc)
	if err != nil {
		return nil, errors.Wrap(err, "jmespath search failed")
	}
	out, err := model.Encode(res)
	if err != nil {
		return nil, errors.Wrap(err, "marshal query result")
	}
	return out, nil
}

func expandMessage(event any) {
	m, ok := event.(map[string]any)
	if !ok {
		return
	}
	raw, ok := m["message"].(string)
	if !ok {
		return
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return
	}
	switch decoded.(type) {
	case map[string]any, []any:
		m["message"] = decoded
	}
}
