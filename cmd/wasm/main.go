//go:build js && wasm

// Package main exposes the structure and segment inference to the browser.
package main

import (
	"encoding/json"
	"syscall/js"

	"mapconf/internal/flatfile"
	"mapconf/internal/structure"
)

// extractLeafPaths handles the mapconfExtractLeafPaths JS function call.
// args[0] = string (JSON document)
// Returns: JSON array of path entries, or {"error": ...}
func extractLeafPaths(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorJSON("mapconfExtractLeafPaths requires 1 argument: JSON text")
	}

	entries, err := structure.NewExtractor().Parse("", []byte(args[0].String()))
	if err != nil {
		return errorJSON(err.Error())
	}

	return toJSON(entries)
}

// detectSegments handles the mapconfDetectSegments JS function call.
// args[0] = string (fixed-width content, the first non-blank line is used)
// args[1] = optional string ("heuristic" or "positional")
// Returns: JSON array of field definitions, or {"error": ...}
func detectSegments(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorJSON("mapconfDetectSegments requires 1 argument: sample text")
	}

	det := &flatfile.Detector{}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		naming, err := flatfile.ParseNaming(args[1].String())
		if err != nil {
			return errorJSON(err.Error())
		}

		det.Naming = naming
	}

	return toJSON(det.DetectContent(args[0].String()))
}

func toJSON(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return errorJSON(err.Error())
	}

	return string(out)
}

func errorJSON(msg string) string {
	out, _ := json.Marshal(map[string]string{"error": msg})
	return string(out)
}

func main() {
	js.Global().Set("mapconfExtractLeafPaths", js.FuncOf(extractLeafPaths))
	js.Global().Set("mapconfDetectSegments", js.FuncOf(detectSegments))

	select {}
}
