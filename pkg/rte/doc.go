// Package rte exposes kvargs through the classic rte_kvargs call shapes.
//
// Every entry point collapses failures to a single bit: constructors return
// nil, processing returns -1. Callers that need the cause should use package
// kvargs directly or attach a log.Logger with SetLogger, which receives one
// event per parse and per failed process call.
//
// A nil key match (*string) selects every entry. A non-nil empty key match
// selects nothing, since keys are never empty.
package rte
