package types

import "fmt"

// Outputs is the accumulating map of stage outputs threaded through a run.
// Entries are append-only and keep insertion order, so stage n always sees
// exactly the outputs of stages 1..n-1 in execution order.
type Outputs struct {
	names  []string
	byName map[string]string
}

// NewOutputs creates an empty outputs accumulator
func NewOutputs() *Outputs {
	return &Outputs{byName: make(map[string]string)}
}

// Append records a stage output. Appending a name twice is a programming
// error upstream (pipelines reject duplicate names) and is reported rather
// than silently overwritten.
func (o *Outputs) Append(name, content string) error {
	if _, ok := o.byName[name]; ok {
		return fmt.Errorf("output for stage %q already recorded", name)
	}
	o.names = append(o.names, name)
	o.byName[name] = content
	return nil
}

// Get returns the output recorded for a stage name
func (o *Outputs) Get(name string) (string, bool) {
	content, ok := o.byName[name]
	return content, ok
}

// Names returns the recorded stage names in insertion order
func (o *Outputs) Names() []string {
	names := make([]string, len(o.names))
	copy(names, o.names)
	return names
}

// Len returns the number of recorded outputs
func (o *Outputs) Len() int {
	return len(o.names)
}
