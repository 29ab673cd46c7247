// Package normalize maps raw genealogical source payloads onto the canonical
// attribute set used for matching.
//
// Every function here is pure and total. A field that cannot be parsed comes
// back absent (empty string or zero Date); nothing in this package returns an
// error.
package normalize
