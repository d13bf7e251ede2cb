// Package structure infers the leaf paths of a JSON target structure.
//
// A leaf path addresses one primitive value inside a parsed document:
//
//	{"order": {"id": 7, "items": [{"sku": "A1"}, {"sku": "B2", "qty": 2}]}}
//
// yields
//
//	order.id
//	order.items[*].sku
//
// Arrays are collapsed to their first element and marked with the "[*]"
// wildcard segment, so a single path stands for every element of a
// homogeneous array. Elements after the first are never inspected.
//
// The extracted entries are suggestions for the mapping step. Each one
// carries a truncated example value and a line type the user may change
// before the structure is pushed to the backend.
package structure
