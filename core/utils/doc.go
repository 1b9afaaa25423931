// Package utils provides small shared helpers that don't belong to a single feature.
//
// Canonical is the one text-normalization routine used for display names: the
// cleaning pass and the ingestion flow both call it so that types and
// abilities end up in the same casing no matter which path wrote them.
package utils
