package models

import (
	"fmt"

	"github.com/roach88/linearize/internal/linearize"
	"github.com/roach88/linearize/internal/value"
)

// New constructs a catalog model by name, for callers (history fixtures,
// the CLI) that only know the model as a string. initial supplies the
// starting value for models that take one (register, cas); it is ignored
// by mutex and queue. A nil initial is treated as value.Null{}.
func New(name string, initial value.Value) (linearize.Model, error) {
	switch name {
	case "register":
		return NewRegister(initial), nil
	case "mutex":
		return NewMutex(), nil
	case "cas":
		return NewCAS(initial), nil
	case "queue":
		return NewQueue(), nil
	default:
		return nil, fmt.Errorf("models: unknown catalog entry %q", name)
	}
}
