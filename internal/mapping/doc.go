// Package mapping holds the field-to-path associations between a sample
// source file and a JSON target structure, and the YAML mapping file that
// persists them between runs.
//
// A mapping file is the reviewed, local record of one configuration. The
// backend keeps its own copy once the configuration is saved; this file is
// what lets a run be replayed from the terminal.
//
// # Schema Overview
//
//	version: "1"
//	source:
//	  file: samples/clients.txt
//	  type: FLAT
//	destination:
//	  name: clients
//	  file: samples/clients.json
//	# Fixed-width field definitions (FLAT sources only)
//	fields:
//	  - name: last_name
//	    start: 1
//	    end: 9
//	    line_type: "02"
//	# Leaf paths of the target JSON, with their line types
//	structure:
//	  - path: client.name
//	    line_type: "02"
//	# Shorthand source -> destination pairs, expanded into mappings
//	pairs:
//	  age: client.age
//	# Explicit mappings
//	mappings:
//	  - source: last_name
//	    destination: client.name
//	    status: TR
//	    line: 1
//	# Suggestions awaiting review (lowest priority)
//	auto:
//	  - source: city
//	    destination: client.address.city
//	    score: 0.92
//
// # Priority Order
//
// A destination path is owned by one entry only. When a file is
// normalized, conflicts are resolved with this priority:
//  1. "pairs" shorthand (highest)
//  2. "mappings" explicit entries
//  3. "auto" suggestions (lowest)
//
// # Path Syntax
//
// Destination paths are the leaf paths produced by package structure:
//   - Simple keys: "id"
//   - Nested keys: "client.address.city"
//   - Array elements: "items[*]"
//   - Nested array fields: "items[*].sku", "matrix[*][*]", "[*].id"
package mapping
