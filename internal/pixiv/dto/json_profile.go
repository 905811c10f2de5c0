package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// JSONProfile is the body of /ajax/user/<id>/profile/all, reduced to
// the work collections this tool cares about.
type JSONProfile struct {
	Illusts WorkSet `json:"illusts"`
	Manga   WorkSet `json:"manga"`
}

// AllIDs merges the user's illustrations and manga into one
// deduplicated ID list, newest post first.
//
// pixiv post IDs are assigned in ascending order, so numeric-descending
// order means newest first. Sorting here also makes the result
// deterministic for the object-shaped response, whose key order is
// otherwise unspecified.
func (p *JSONProfile) AllIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, id := range append(append([]string{}, p.Illusts.IDs...), p.Manga.IDs...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseUint(ids[i], 10, 64)
		b, errB := strconv.ParseUint(ids[j], 10, 64)
		if errA != nil || errB != nil {
			return ids[i] > ids[j]
		}
		return a > b
	})

	return ids
}

// WorkSet is a collection of post IDs as it appears in the profile
// response. The live service has been observed to return it in two
// shapes:
//
//   - an object keyed by post ID: {"129000000": null, "128000000": null}
//   - an array of objects with an id field: [{"id": "129000000"}, ...]
//
// Both shapes, plus null and false (returned for empty collections),
// normalize into a plain ID slice at decode time so downstream code
// never branches on container shape.
type WorkSet struct {
	IDs []string
}

// UnmarshalJSON implements the dict-or-list normalization.
func (ws *WorkSet) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		ws.IDs = nil
		return nil
	}

	switch trimmed[0] {
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return err
		}
		ws.IDs = make([]string, 0, len(m))
		for id := range m {
			ws.IDs = append(ws.IDs, id)
		}
		return nil

	case '[':
		var items []workItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		ws.IDs = nil
		for _, it := range items {
			if id := it.id(); id != "" {
				ws.IDs = append(ws.IDs, id)
			}
		}
		return nil

	case 'n', 'f': // null / false both mean "no works"
		ws.IDs = nil
		return nil
	}

	return fmt.Errorf("unexpected works container shape: %s", preview(trimmed))
}

// workItem is one entry of the array-shaped works collection. The id
// field has been seen both as a string and as a number.
type workItem struct {
	ID any `json:"id"`
}

func (w workItem) id() string {
	switch v := w.ID.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
