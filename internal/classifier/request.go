package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidArgument marks a request whose fields are not strings.
var ErrInvalidArgument = errors.New("invalid argument")

// FieldError reports the request field that failed validation.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid argument %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalidArgument) match any FieldError.
func (e *FieldError) Is(target error) bool { return target == ErrInvalidArgument }

// Request is the host-facing input. Absent fields decode to empty strings;
// present fields must be strings.
type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Channel     string `json:"channel"`
}

const requestSchemaURL = "schema://classify-request.json"

var requestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"channel":     map[string]any{"type": "string"},
	},
}

var (
	compileOnce     sync.Once
	compiledRequest *jsonschema.Schema
	compileErr      error
)

func requestValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(requestSchemaURL, requestSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledRequest, compileErr = c.Compile(requestSchemaURL)
	})
	return compiledRequest, compileErr
}

// DecodeRequest parses and validates a JSON classification request.
func DecodeRequest(raw []byte) (Request, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Request{}, &FieldError{Field: "request", Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := requestValidator()
	if err != nil {
		return Request{}, fmt.Errorf("compile request schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Request{}, &FieldError{Field: offendingField(err), Err: err}
	}

	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, &FieldError{Field: "request", Err: err}
	}
	return req, nil
}

// offendingField finds the first instance location reported by the validator.
func offendingField(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return "request"
	}
	queue := []*jsonschema.ValidationError{ve}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.InstanceLocation) > 0 {
			return strings.Join(cur.InstanceLocation, "/")
		}
		queue = append(queue, cur.Causes...)
	}
	return "request"
}
