package hellomoon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Comparison operators accepted by numeric filters.
const (
	OpEqual          = "="
	OpNotEqual       = "!="
	OpGreater        = ">"
	OpGreaterOrEqual = ">="
	OpLess           = "<"
	OpLessOrEqual    = "<="
	OpBetween        = "between"
)

var validOps = map[string]bool{
	OpEqual: true, OpNotEqual: true, OpGreater: true, OpGreaterOrEqual: true,
	OpLess: true, OpLessOrEqual: true, OpBetween: true,
}

// Filter is a numeric request field that is either a bare value or a
// comparison object. The zero Filter encodes as the bare number 0; request
// structs hold *Filter so that nil means "not set".
//
//	Exactly(5)      -> 5
//	Gt(1673226666)  -> {"operator":">","value":1673226666}
//	Between(10, 20) -> {"operator":"between","greaterThan":10,"lessThan":20}
type Filter struct {
	Operator    string
	Value       int64
	GreaterThan int64
	LessThan    int64
}

// Exactly matches v, sent as a bare number.
func Exactly(v int64) *Filter { return &Filter{Value: v} }

// Eq matches values equal to v.
func Eq(v int64) *Filter { return &Filter{Operator: OpEqual, Value: v} }

// Ne matches values not equal to v.
func Ne(v int64) *Filter { return &Filter{Operator: OpNotEqual, Value: v} }

// Gt matches values greater than v.
func Gt(v int64) *Filter { return &Filter{Operator: OpGreater, Value: v} }

// Gte matches values greater than or equal to v.
func Gte(v int64) *Filter { return &Filter{Operator: OpGreaterOrEqual, Value: v} }

// Lt matches values less than v.
func Lt(v int64) *Filter { return &Filter{Operator: OpLess, Value: v} }

// Lte matches values less than or equal to v.
func Lte(v int64) *Filter { return &Filter{Operator: OpLessOrEqual, Value: v} }

// Between matches values strictly between lo and hi.
func Between(lo, hi int64) *Filter {
	return &Filter{Operator: OpBetween, GreaterThan: lo, LessThan: hi}
}

// Since matches block times later than now minus d (unix seconds).
func Since(now time.Time, d time.Duration) *Filter {
	return Gt(now.Add(-d).Unix())
}

type filterWire struct {
	Operator    string `json:"operator"`
	Value       *int64 `json:"value,omitempty"`
	GreaterThan *int64 `json:"greaterThan,omitempty"`
	LessThan    *int64 `json:"lessThan,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (f Filter) MarshalJSON() ([]byte, error) {
	switch {
	case f.Operator == "":
		return json.Marshal(f.Value)
	case f.Operator == OpBetween:
		return json.Marshal(filterWire{Operator: f.Operator, GreaterThan: &f.GreaterThan, LessThan: &f.LessThan})
	case validOps[f.Operator]:
		return json.Marshal(filterWire{Operator: f.Operator, Value: &f.Value})
	}
	return nil, fmt.Errorf("unknown filter operator %q", f.Operator)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Filter) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '{' {
		var v int64
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		*f = Filter{Value: v}
		return nil
	}

	var w filterWire
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	if !validOps[w.Operator] {
		return fmt.Errorf("unknown filter operator %q", w.Operator)
	}
	*f = Filter{Operator: w.Operator}
	if w.Value != nil {
		f.Value = *w.Value
	}
	if w.GreaterThan != nil {
		f.GreaterThan = *w.GreaterThan
	}
	if w.LessThan != nil {
		f.LessThan = *w.LessThan
	}
	return nil
}

// String renders the filter the way a user would type it ("> 10", "10..20").
func (f Filter) String() string {
	switch f.Operator {
	case "":
		return fmt.Sprintf("%d", f.Value)
	case OpBetween:
		return fmt.Sprintf("%d..%d", f.GreaterThan, f.LessThan)
	}
	return fmt.Sprintf("%s %d", f.Operator, f.Value)
}
