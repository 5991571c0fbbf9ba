package blocks

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ManagedKey is the reserved top-level JSON key that holds managed entries.
// Documents using this key for their own data are not supported.
const ManagedKey = "_repo_managed"

// JSONUpsert sets the managed entry for id to value (any JSON-marshalable
// value) inside the reserved top-level object, creating the object when
// absent. The rest of the document is preserved byte-for-byte where sjson
// allows.
func JSONUpsert(doc, id string, value any) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("blocks: invalid block id %q", id)
	}
	if doc != "" && !gjson.Valid(doc) {
		return "", fmt.Errorf("blocks: invalid JSON document")
	}
	if doc == "" {
		doc = "{}"
	}
	out, err := sjson.Set(doc, ManagedKey+"."+id, value)
	if err != nil {
		return "", fmt.Errorf("blocks: set managed key: %w", err)
	}
	return out, nil
}

// JSONRemove deletes the managed entry for id. When the reserved object
// becomes empty it is pruned entirely. Removing an absent id is
// ErrBlockNotFound.
func JSONRemove(doc, id string) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("blocks: invalid block id %q", id)
	}
	if !gjson.Valid(doc) {
		return "", fmt.Errorf("blocks: invalid JSON document")
	}
	if !gjson.Get(doc, ManagedKey+"."+id).Exists() {
		return "", fmt.Errorf("%w: %q", ErrBlockNotFound, id)
	}
	out, err := sjson.Delete(doc, ManagedKey+"."+id)
	if err != nil {
		return "", fmt.Errorf("blocks: delete managed key: %w", err)
	}
	managed := gjson.Get(out, ManagedKey)
	if managed.IsObject() && len(managed.Map()) == 0 {
		out, err = sjson.Delete(out, ManagedKey)
		if err != nil {
			return "", fmt.Errorf("blocks: prune managed object: %w", err)
		}
	}
	return out, nil
}

// JSONGet returns the managed entry for id. The boolean reports presence.
func JSONGet(doc, id string) (gjson.Result, bool) {
	if !ValidID(id) || !gjson.Valid(doc) {
		return gjson.Result{}, false
	}
	r := gjson.Get(doc, ManagedKey+"."+id)
	return r, r.Exists()
}

// JSONBlocks lists the ids present in the reserved object, in document
// order.
func JSONBlocks(doc string) []string {
	if !gjson.Valid(doc) {
		return nil
	}
	managed := gjson.Get(doc, ManagedKey)
	if !managed.IsObject() {
		return nil
	}
	var ids []string
	managed.ForEach(func(key, _ gjson.Result) bool {
		ids = append(ids, key.String())
		return true
	})
	return ids
}
