// Package id provides the identifier and clock sources injected into the
// planner.
//
// Every node and relationship the planner emits carries a generated "_id"
// and creation/modification timestamps. Rather than calling global
// generators inline, the planner takes a Generator and a Clock so tests can
// fix both:
//
//	p := planner.New(
//	    planner.WithIDGenerator(id.NewSequence("id")),
//	    planner.WithClock(id.FixedClock{T: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}),
//	)
//
// Production code uses UUIDGenerator and SystemClock, which are the defaults.
//
// # Timestamp Format
//
// Timestamps are rendered with TimestampLayout, millisecond precision with a
// numeric zone offset (e.g. "2024-01-02T03:04:05.000+00:00").
package id
