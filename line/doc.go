// Package line manages transit lines and the stations they run through.
//
// A Line wraps one section.Sections path with its identity (id, name, color)
// and an optional external route reference. Service is the entry point for
// callers: it resolves station ids through the station registry, serializes
// mutations per line, persists through a Repository and caches ordered
// station lists.
package line
