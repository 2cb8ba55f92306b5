// Package trace records what the spelling engine and its hosts do.
//
// The controller, the menu builder and the hosts never print. They emit
// events (overlay attached, menu built, item teardown failed) to the Tracer
// found in their options or in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeMenu, "context-menu", 0)
//	defer span.End("")
//
// A tracer either streams events as text or NDJSON, keeps the last N in a
// ring for a dump on exit, or both. Levels filter by scope: phase keeps
// server and controller events, detail adds menu events, debug adds
// per-document events. Failures pass every level except off.
package trace
