package models

import "strings"

// CodeMap holds the bidirectional competitor code <-> full name mapping.
// It is static configuration: built once at startup and read-only after.
type CodeMap struct {
	codeToName map[string]string
	nameToCode map[string]string
}

// NewCodeMap builds a CodeMap from a code -> full name table. The reverse
// name -> code index is keyed by the lowercased full name, matching the
// normalizer's opponent normalization.
func NewCodeMap(codeToName map[string]string) *CodeMap {
	m := &CodeMap{
		codeToName: make(map[string]string, len(codeToName)),
		nameToCode: make(map[string]string, len(codeToName)),
	}
	for code, name := range codeToName {
		code = strings.ToUpper(strings.TrimSpace(code))
		m.codeToName[code] = name
		m.nameToCode[strings.ToLower(strings.TrimSpace(name))] = code
	}
	return m
}

// CodeFor resolves a normalized (lowercase) full name to a competitor code.
func (m *CodeMap) CodeFor(normalizedName string) (string, bool) {
	code, ok := m.nameToCode[normalizedName]
	return code, ok
}

// NameFor resolves a competitor code to its full name.
func (m *CodeMap) NameFor(code string) (string, bool) {
	name, ok := m.codeToName[strings.ToUpper(code)]
	return name, ok
}

// Len returns the number of mapped competitors.
func (m *CodeMap) Len() int {
	return len(m.codeToName)
}

// DefaultCodeMap returns the built-in competitor mapping. Deployments with
// different datasets override it via the teams section of the config file.
func DefaultCodeMap() *CodeMap {
	return NewCodeMap(map[string]string{
		"IND": "India",
		"AUS": "Australia",
		"ENG": "England",
		"WI":  "West Indies",
		"NZ":  "New Zealand",
		"SA":  "South Africa",
		"PAK": "Pakistan",
		"BAN": "Bangladesh",
		"NED": "Netherlands",
	})
}
