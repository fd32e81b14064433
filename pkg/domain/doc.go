/*
Package domain contains the survey document model and the values derived from it.

It defines the schema tree, the per-node attribute bag, answers and the results
produced by evaluation. This package performs no I/O and holds no shared state,
so every value can be used from several goroutines once built.

# Key Entities

  - SchemaNode: a question, container or presentational element, with nested children.
  - QuestionType: closed enumeration split into data, void and exam sets.
  - Attribute: serialized per-node configuration (display, limits, rules, exam settings).
  - Index: id-addressed arena over a document, used for lookups and graph work.
  - Answer / AnswerSet: runtime values keyed by node id (scalar, multi or matrix).
  - View / NodeView: visibility, requiredness, errors and computed values per node.
*/
package domain
