// Package models provides a small catalog of sequential specifications
// for the linearizability checker: a single register, a mutex, a
// compare-and-swap cell, and a FIFO queue. Each type implements
// linearize.Model and is safe to share across the checker's concurrent
// search, since every Step call returns a new value rather than mutating
// the receiver.
package models
