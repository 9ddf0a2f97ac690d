package wire

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/value"
)

// ApplyPatch applies a patch JSON payload to current, returning a new
// Snapshot equal to current with those edits. upsertFlags are applied
// before removeKeys (SPEC_FULL.md §4 decision on Open Question 2):
// a key present in both lists is upserted, then immediately removed.
func ApplyPatch(current registry.Snapshot, patchJSON []byte, schema *Schema, opts Options) (registry.Snapshot, *ParseError) {
	var wp wirePatch
	if err := json.Unmarshal(patchJSON, &wp); err != nil {
		return registry.Snapshot{}, errInvalidJSON(err.Error())
	}

	patchID := uuid.NewString()
	result := current
	for _, wf := range wp.UpsertFlags {
		id, err := value.ParseFlagID(wf.Key)
		if err != nil {
			return registry.Snapshot{}, errInvalidSnapshot(fmt.Sprintf("flag key %q: %v", wf.Key, err))
		}
		schemaEntry, known := schema.Lookup(id.Render())
		if !known {
			if opts.UnknownFlagKeyStrategy == SkipUnknownFlagKey {
				opts.warn(wf.Key, "unknown flag key skipped in patch", patchID)
				continue
			}
			return registry.Snapshot{}, errFlagNotFound(id)
		}
		if wf.DefaultValue.Kind != schemaEntry.DeclaredKind {
			return registry.Snapshot{}, errTypeMismatch(id, schemaEntry.DeclaredKind, wf.DefaultValue.Kind)
		}
		def, perr := decodeFlag(id, wf, schemaEntry)
		if perr != nil {
			return registry.Snapshot{}, perr
		}
		result = result.WithDefinition(def)
	}

	removeIDs := make([]value.FlagId, 0, len(wp.RemoveKeys))
	for _, key := range wp.RemoveKeys {
		id, err := value.ParseFlagID(key)
		if err != nil {
			return registry.Snapshot{}, errInvalidSnapshot(fmt.Sprintf("remove key %q: %v", key, err))
		}
		removeIDs = append(removeIDs, id)
	}
	result = result.WithoutKeys(removeIDs)

	return result, nil
}
