// Package balancer implements the round-robin redirector that sits in
// front of a set of backends and publishes the stats document the
// dashboard polls.
//
// Requests to / are answered with a 307 pointing at the next backend in
// rotation. The balancer never proxies bodies; clients follow the
// redirect themselves, so POSTs keep their method and payload.
//
// Each backend is health checked on an interval. A backend whose last
// check failed drops out of rotation until it recovers; if every backend
// is down the rotation carries on over all of them rather than refusing
// traffic. When a metrics path is configured, healthy backends are also
// asked for a JSON document carrying cpu, ram and up_time, which is
// passed through to /stats as optional telemetry.
//
// GET /stats is rate limited per client IP with golang.org/x/time/rate.
package balancer
