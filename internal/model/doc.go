// Package model holds the wire-level records exchanged between the
// executor agent and the cluster manager: identifiers, task and executor
// descriptions, status updates, and the inbound event union.
//
// All records are plain data. They are created at the transport boundary,
// handed to exactly one consumer, and never mutated after construction.
package model
