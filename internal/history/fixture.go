package history

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/models"
	"github.com/roach88/linearize/internal/value"
)

// Fixture is a loaded history together with the model it should be
// checked against.
type Fixture struct {
	ModelName string
	Model     linearize.Model
	History   linearize.History
}

// fixtureDocument mirrors the YAML schema: a model name from the catalog
// and its events, in file order.
type fixtureDocument struct {
	Model   string          `yaml:"model"`
	Initial interface{}     `yaml:"initial,omitempty"`
	Events  []fixtureEvent  `yaml:"events"`
}

type fixtureEvent struct {
	Process  string      `yaml:"process"`
	Type     string      `yaml:"type"`
	Function string      `yaml:"function"`
	Value    interface{} `yaml:"value"`
}

// LoadFixture reads and parses a history fixture YAML file, constructing
// the named catalog model and converting its event list into a History.
// Unknown fields are rejected, the same way the reference harness guards
// against typos in scenario YAML.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("history: read fixture: %w", err)
	}

	var doc fixtureDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("history: parse fixture: %w", err)
	}

	return buildFixture(&doc)
}

// ParseFixture parses a history fixture from an in-memory YAML document.
// It is LoadFixture's logic without the filesystem read, used directly by
// tests.
func ParseFixture(data []byte) (*Fixture, error) {
	var doc fixtureDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("history: parse fixture: %w", err)
	}

	return buildFixture(&doc)
}

func buildFixture(doc *fixtureDocument) (*Fixture, error) {
	if doc.Model == "" {
		return nil, fmt.Errorf("history: fixture: model is required")
	}
	if len(doc.Events) == 0 {
		return nil, fmt.Errorf("history: fixture: events list is required and must be non-empty")
	}

	initial, err := value.Of(doc.Initial)
	if err != nil {
		return nil, fmt.Errorf("history: fixture: initial: %w", err)
	}

	model, err := models.New(doc.Model, initial)
	if err != nil {
		return nil, fmt.Errorf("history: fixture: %w", err)
	}

	h := make(linearize.History, 0, len(doc.Events))
	for i, e := range doc.Events {
		op, err := toOp(e)
		if err != nil {
			return nil, fmt.Errorf("history: fixture: events[%d]: %w", i, err)
		}
		h = append(h, op)
	}

	if err := Validate(h); err != nil {
		return nil, fmt.Errorf("history: fixture: %w", err)
	}

	return &Fixture{ModelName: doc.Model, Model: model, History: Complete(h)}, nil
}

func toOp(e fixtureEvent) (linearize.Op, error) {
	if e.Process == "" {
		return linearize.Op{}, fmt.Errorf("process is required")
	}

	eventType, err := parseEventType(e.Type)
	if err != nil {
		return linearize.Op{}, err
	}

	v, err := value.Of(e.Value)
	if err != nil {
		return linearize.Op{}, fmt.Errorf("value: %w", err)
	}

	return linearize.Op{
		Type:     eventType,
		Process:  linearize.ProcessID(e.Process),
		Function: linearize.Function(e.Function),
		Value:    v,
	}, nil
}

func parseEventType(s string) (linearize.EventType, error) {
	switch s {
	case "invoke":
		return linearize.Invoke, nil
	case "ok":
		return linearize.Ok, nil
	case "fail":
		return linearize.Fail, nil
	case "info":
		return linearize.Info, nil
	default:
		return 0, fmt.Errorf("unknown event type %q", s)
	}
}
