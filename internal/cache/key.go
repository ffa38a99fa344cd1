package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// Key identifies a cached read: the operation plus its serialized parameters
type Key struct {
	Op     string
	Params string
}

// NewKey serializes params into a Key. Strings are used verbatim, other values
// as JSON, so equal parameter sets always produce equal keys.
func NewKey(op string, params interface{}) Key {
	switch p := params.(type) {
	case nil:
		return Key{Op: op}
	case string:
		return Key{Op: op, Params: p}
	}
	b, err := json.Marshal(params)
	if err != nil {
		return Key{Op: op, Params: fmt.Sprintf("%v", params)}
	}
	return Key{Op: op, Params: string(b)}
}

// OpKey is a pattern matching every key of op
func OpKey(op string) Key {
	return Key{Op: op}
}

// Matches reports whether k, used as a pattern, covers other
func (k Key) Matches(other Key) bool {
	if k.Op != other.Op {
		return false
	}
	return k.Params == "" || k.Params == other.Params
}

func (k Key) String() string {
	if k.Params == "" {
		return k.Op
	}
	return k.Op + ":" + k.Params
}

// State is what the cache holds for a key
type State int

// State values
const (
	StateAbsent State = iota
	StatePending
	StateFresh
	StateStale
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StatePending:
		return "pending"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Snapshot is the observable state of one entry
type Snapshot struct {
	Key       Key
	State     State
	Value     interface{}
	Err       error
	Fetching  bool
	UpdatedAt time.Time
}

// Loading reports a first fetch with nothing to show yet
func (s Snapshot) Loading() bool {
	return s.Fetching && s.Value == nil
}
