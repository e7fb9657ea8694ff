// Package docent holds the shared retrieval core of the learning library:
// facet filtering, relevance scoring, ranked search, topic recommendations,
// learning-path synthesis, and recency queries. Every operation is a pure
// function of a library snapshot and the request parameters; entries are
// never mutated. Both hosts (the bleve-backed search server and the
// in-memory snapshot server) consume this package so the scoring weights
// cannot silently diverge between deployments.
package docent
