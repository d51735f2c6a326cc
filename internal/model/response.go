package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Response is a user's answer to one question: nothing, a single option
// index, or a set of option indexes. On the wire it is null, a number or
// an array respectively.
type Response struct {
	single  *int
	indexes []int
	multi   bool
}

// NoResponse is the unanswered single-choice response.
func NoResponse() Response { return Response{} }

// SingleResponse selects one option.
func SingleResponse(i int) Response { return Response{single: &i} }

// MultiResponse selects a set of options. The stored set is sorted and
// free of duplicates; an empty call yields an unanswered multi response.
func MultiResponse(indexes ...int) Response {
	set := make([]int, 0, len(indexes))
	seen := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		set = append(set, i)
	}
	sort.Ints(set)
	return Response{indexes: set, multi: true}
}

// IsMulti reports whether r is a set response.
func (r Response) IsMulti() bool { return r.multi }

// IsNull reports whether r is the null single response.
func (r Response) IsNull() bool { return !r.multi && r.single == nil }

// Single returns the chosen index of a single response.
func (r Response) Single() (int, bool) {
	if r.multi || r.single == nil {
		return 0, false
	}
	return *r.single, true
}

// Indexes returns a copy of the chosen set of a multi response, or nil.
func (r Response) Indexes() []int {
	if !r.multi {
		return nil
	}
	out := make([]int, len(r.indexes))
	copy(out, r.indexes)
	return out
}

// Contains reports whether option i is part of the response.
func (r Response) Contains(i int) bool {
	if r.multi {
		for _, x := range r.indexes {
			if x == i {
				return true
			}
		}
		return false
	}
	return r.single != nil && *r.single == i
}

func (r Response) String() string {
	switch {
	case r.multi:
		return fmt.Sprint(r.indexes)
	case r.single != nil:
		return fmt.Sprint(*r.single)
	default:
		return "null"
	}
}

// MarshalJSON implements json.Marshaler.
func (r Response) MarshalJSON() ([]byte, error) {
	switch {
	case r.multi:
		if r.indexes == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(r.indexes)
	case r.single != nil:
		return json.Marshal(*r.single)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Response) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = NoResponse()
		return nil
	case data[0] == '[':
		var set []int
		if err := json.Unmarshal(data, &set); err != nil {
			return fmt.Errorf("decode response set: %w", err)
		}
		*r = MultiResponse(set...)
		return nil
	default:
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return fmt.Errorf("decode response index: %w", err)
		}
		*r = SingleResponse(i)
		return nil
	}
}
