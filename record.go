package costsheet

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// This file contains the state record: the single JSON document used by the
// storage, the share links and any other place a full state is serialized.
//
//	{"rows":[{"id":1,"processCategory":"주자재",...}],"projectName":"...","date":"...",
//	 "contractAmount":"145000000","contractCapacity":247,"revenueAmount":""}
//
// Older documents spell row fields with their Korean labels ("공정", "품목"...)
// and sometimes store the contract amount as a number. DecodeState reads both:
// every field is looked up by its canonical name first, then by its label.

var rowsRule = fieldRule{name: "rows", label: "items"}

// record is the encoded form of a State. Keys follow the canonical field names.
type record struct {
	Rows             Ledger  `json:"rows"`
	ProjectName      string  `json:"projectName"`
	Date             string  `json:"date"`
	ContractAmount   string  `json:"contractAmount"`
	ContractCapacity float64 `json:"contractCapacity"`
	RevenueAmount    string  `json:"revenueAmount"`
}

// MarshalJSON encodes the state record, fields in a stable order.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{
		Rows:             s.Ledger,
		ProjectName:      s.Meta.ProjectName,
		Date:             s.Meta.Date,
		ContractAmount:   s.Meta.ContractAmount,
		ContractCapacity: finite(s.Meta.ContractCapacity),
		RevenueAmount:    s.Meta.RevenueAmount,
	})
}

// UnmarshalJSON decodes a state record, see DecodeState.
func (s *State) UnmarshalJSON(data []byte) error {
	st, err := DecodeState(data)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// DecodeState parses a state record.
//
// Each missing or ill-typed field takes its value from NewState, so a partial
// document still restores everything it carries. Rows without a usable id get
// fresh ids after the largest one. Only a document that is not a JSON object
// is an error, it wraps ErrParse.
func DecodeState(data []byte) (State, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return State{}, fmt.Errorf("%w: got %T, want an object", ErrParse, doc)
	}

	s := NewState()
	if v, ok := lookup(doc, metaRules[MetaProjectName]); ok {
		s.Meta.ProjectName = asText(v)
	}
	if v, ok := lookup(doc, metaRules[MetaDate]); ok {
		s.Meta.Date = asText(v)
	}
	if v, ok := lookup(doc, metaRules[MetaContractAmount]); ok {
		s.Meta.ContractAmount = StripSeparators(asText(v))
	}
	if v, ok := lookup(doc, metaRules[MetaContractCapacity]); ok {
		s.Meta.ContractCapacity = asNumber(v)
	}
	if v, ok := lookup(doc, metaRules[MetaRevenueAmount]); ok {
		s.Meta.RevenueAmount = StripSeparators(asText(v))
	}

	if v, ok := lookup(doc, rowsRule); ok {
		if rows, ok := v.([]any); ok {
			s.Ledger = decodeRows(rows)
		}
	}
	return s, nil
}

// decodeRows reads the rows of a record, skipping anything that is not an object.
func decodeRows(rows []any) Ledger {
	items := make([]LineItem, 0, len(rows))
	for _, r := range rows {
		if _, ok := r.(map[string]any); !ok {
			continue
		}
		var it LineItem
		if v, ok := lookup(r, fieldRule{name: "id"}); ok {
			it.ID = asID(v)
		}
		for _, f := range Fields() {
			v, ok := lookup(r, fieldRules[f])
			if !ok {
				continue
			}
			if f.Numeric() {
				it, _ = it.With(f, strconv.FormatFloat(asNumber(v), 'f', -1, 64))
			} else {
				it, _ = it.With(f, asText(v))
			}
		}
		items = append(items, it)
	}

	// repair missing and duplicated ids, keeping the first occurrence.
	next := NewLedger(items...).NextID()
	seen := make(map[int]bool, len(items))
	for i := range items {
		if items[i].ID <= 0 || seen[items[i].ID] {
			items[i].ID = next
			next++
		}
		seen[items[i].ID] = true
	}
	return Ledger{items: items}
}

// lookup finds the value of a field by its canonical name, then by its label.
// A null value counts as missing.
func lookup(doc any, rule fieldRule) (any, bool) {
	paths := []string{"$." + rule.name}
	if rule.label != "" {
		paths = append(paths, `$["`+rule.label+`"]`)
	}
	for _, path := range paths {
		v, err := jsonpath.Get(path, doc)
		if err == nil && v != nil {
			return v, true
		}
	}
	return nil, false
}

func asText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func asNumber(v any) float64 {
	switch v := v.(type) {
	case float64:
		return finite(v)
	case string:
		return ParseNumber(v)
	}
	return 0
}

func asID(v any) int {
	switch v := v.(type) {
	case float64:
		if v > 0 && v < 1<<53 && v == math.Trunc(v) {
			return int(v)
		}
	case string:
		if id, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return id
		}
	}
	return 0
}
