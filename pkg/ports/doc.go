/*
Package ports defines the driven ports (interfaces) of the surveykit engine.

These interfaces decouple evaluation and scoring from wherever documents and
answers are kept, so the same engine runs against files, memory or a host
application's own storage.

# Key Interfaces

  - DocumentLoader: loads survey documents by id (e.g. from a directory or memory).
  - AnswerLoader: loads submitted answer sets by id.
*/
package ports
