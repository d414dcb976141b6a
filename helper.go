// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package matio

// reservedKeywords is the fixed list of 20 reserved words that may not
// be used as a variable name, matching the source scientific
// environment's language keywords.
var reservedKeywords = map[string]bool{
	"break": true, "case": true, "catch": true, "classdef": true,
	"continue": true, "else": true, "elseif": true, "end": true,
	"for": true, "function": true, "global": true, "if": true,
	"otherwise": true, "parfor": true, "persistent": true, "return": true,
	"spmd": true, "switch": true, "try": true, "while": true,
}

// isValidVariableName reports whether name may be used as a container
// key: non-empty, at most 63 characters, starting with an ASCII
// letter, containing only ASCII alphanumerics and underscores
// thereafter, and not a reserved keyword.
func isValidVariableName(name string) bool {
	if len(name) == 0 || len(name) > 63 {
		return false
	}
	if reservedKeywords[name] {
		return false
	}
	first := name[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '_' {
			return false
		}
	}
	return true
}
