// Package ecs is a parallel entity-component-system runtime. Components live
// in dense per-type columns indexed by entity slot; systems declare the
// component sets they read and write, and the scheduler derives a conflict
// graph from those declarations to run non-conflicting systems concurrently
// on a fixed worker pool while keeping conflicting ones in strictly ordered
// batches.
package ecs
