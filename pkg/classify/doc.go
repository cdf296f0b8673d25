// Package classify builds pivot classifiers from declarative descriptions:
// JSONPath field lookups for dimension values, sequence-valued fields for
// explode semantics, and serializable comparison predicates for boolean
// dimensions. It is the bridge between YAML job specs and the function-typed
// API of the pivot engine.
package classify
