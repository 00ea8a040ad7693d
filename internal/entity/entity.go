// Package entity defines the typed span model shared by every detector and
// by the rewriting stage.
//
// An Entity records where a piece of PII was found in the source text. Offsets
// are byte offsets into the UTF-8 source; End is exclusive, so the invariant
// source[Start:End] == Text holds for every span a detector emits.
package entity

import "sort"

// Type classifies the kind of PII an entity span represents.
type Type string

// The full set of entity types the engine can emit.
const (
	TypeEmail      Type = "EMAIL_ADDRESS"
	TypePhone      Type = "PHONE_NUMBER"
	TypeIPAddress  Type = "IP_ADDRESS"
	TypeCreditCard Type = "CREDIT_CARD"
	TypeURL        Type = "URL"
	TypeDateTime   Type = "DATE_TIME"
	TypePerson     Type = "PERSON"
	TypeLocation   Type = "LOCATION"
)

// All lists every entity type in detector priority order.
var All = []Type{
	TypeEmail, TypePhone, TypeIPAddress, TypeCreditCard,
	TypeURL, TypeDateTime, TypePerson, TypeLocation,
}

// Entity is one detected PII span.
type Entity struct {
	Type  Type   `json:"type"`
	Text  string `json:"text"`
	Start int    `json:"startIndex"`
	End   int    `json:"endIndex"`
}

// List is an ordered collection of entity spans.
type List []Entity

// FilterByType returns the spans of the given type, preserving order.
func (l List) FilterByType(t Type) List {
	var out List
	for _, e := range l {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// CountByType returns how many spans of the given type the list holds.
func (l List) CountByType(t Type) int {
	n := 0
	for _, e := range l {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Counts returns per-type counts for every type present in the list.
func (l List) Counts() map[Type]int {
	out := make(map[Type]int)
	for _, e := range l {
		out[e.Type]++
	}
	return out
}

// SortByStart stable-sorts the list ascending by start offset in place.
// Spans with equal starts keep their relative (detector priority) order.
func (l List) SortByStart() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Start < l[j].Start
	})
}
