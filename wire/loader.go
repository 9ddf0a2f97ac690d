package wire

import "github.com/konditional-dev/konditional/registry"

// LoadAndPublish composes Decode and container.Load: on a decode
// failure the container's current snapshot is left untouched (spec
// §4.5: "a failed decode never calls registry.load").
func LoadAndPublish(container *registry.Container, schema *Schema, data []byte, opts Options) *ParseError {
	snap, err := Decode(data, schema, opts)
	if err != nil {
		return err
	}
	container.Load(snap)
	return nil
}
