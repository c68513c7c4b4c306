// Package parser provides generic parsing utilities for model output.
//
// Language models frequently wrap the JSON they were asked for in prose,
// markdown code fences, or both. This package isolates the extraction
// step from the network code so it can be unit-tested with literal
// strings: strip fence markers, locate the outermost brace pair, parse.
package parser
