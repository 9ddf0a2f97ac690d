package commands

import (
	"encoding/json"
	"fmt"

	"github.com/konditional-dev/konditional/flag"
	"github.com/konditional-dev/konditional/value"
	"github.com/konditional-dev/konditional/wire"
)

// snapshotPeek mirrors just enough of the wire snapshot shape (spec
// §6.1) to read each flag's key, kind, and source default straight out
// of the payload, since this CLI has no compile-time flag declarations
// of its own to build a schema from.
type snapshotPeek struct {
	Flags []struct {
		Key          string      `json:"key"`
		Active       bool        `json:"active"`
		Salt         string      `json:"salt"`
		DefaultValue value.Value `json:"defaultValue"`
	} `json:"flags"`
}

// schemaFromPayload derives a wire.Schema from a snapshot file's own
// contents: every flag it declares becomes a known key, with its own
// default value standing in for the compile-time declaration that a
// host process would normally provide. This intentionally forgoes
// §4.5's "schema compiled once at declaration time" rule-reattachment
// path (there is no custom predicate to reattach when the schema comes
// from the file being decoded), which is fine for a read-only inspection
// tool but would be wrong for a host embedding konditional as a library.
func schemaFromPayload(data []byte) (*wire.Schema, error) {
	var peek snapshotPeek
	if err := json.Unmarshal(data, &peek); err != nil {
		return nil, fmt.Errorf("peek snapshot: %w", err)
	}

	schema := wire.NewSchema()
	for _, wf := range peek.Flags {
		id, err := value.ParseFlagID(wf.Key)
		if err != nil {
			return nil, fmt.Errorf("flag key %q: %w", wf.Key, err)
		}
		def := flag.NewDefinition(id, wf.DefaultValue.Kind, wf.DefaultValue, nil, wf.Active, wf.Salt)
		schema.Register(def, nil)
	}
	return schema, nil
}
