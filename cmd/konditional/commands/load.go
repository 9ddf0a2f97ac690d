package commands

import (
	"fmt"
	"os"

	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/wire"
)

// loadSnapshot reads a snapshot JSON file and decodes it into a fresh
// container, using a schema derived from the file's own contents
// (schemaFromPayload). Equivalent to the teacher's client.NewClient plus
// a GET, except the "server" here is a local file.
func loadSnapshot(path string) (*registry.Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	schema, err := schemaFromPayload(data)
	if err != nil {
		return nil, err
	}

	container := registry.NewContainer()
	if perr := wire.LoadAndPublish(container, schema, data, wire.DefaultOptions()); perr != nil {
		return nil, fmt.Errorf("decode snapshot: %s", perr.Error())
	}
	return container, nil
}
