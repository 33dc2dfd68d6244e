// Package combined holds benchmarks that put the one-shot channels next to
// the multi-value transports they are usually replaced with.
//
// Each benchmark moves one value from one goroutine to another per
// iteration, so the numbers include goroutine wake-up, not just the cost of
// the data structure. The request/reply benchmarks add a long-lived server
// goroutine fed by a queue, with each reply travelling back over a fresh
// one-shot channel or Go channel.
package combined
