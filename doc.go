/*
Package surveykit evaluates and grades hierarchical survey and exam documents.

A document is a tree of typed schema nodes (questions, containers and
presentational elements). Each node carries an attribute bag whose small rule
expressions decide visibility, required-ness, validation, text replacement,
calculation and early finish. Exam questions also carry a score, a scoring
mode and the expected answer.

# Concept

The library consumes a document plus an answer set and returns derived
results. It never mutates either input and keeps no state between calls, so a
host (HTTP service, CLI, batch job) owns storage and transport while surveykit
owns the semantics.

# Key Features

  - Deterministic evaluation: rules run in dependency order; cycles are reported, not looped.
  - Hidden branches are inert: they expose no value and raise no findings.
  - Authoring checks: syntax, unknown references and cycles are found before publishing.
  - Exam scoring: single answer, all-or-nothing, partial credit, weighted and manual modes.

# Usage

	eng := surveykit.New(surveykit.WithLogger(logger))

	view, err := eng.Evaluate(ctx, doc, domain.AnswerSet{
		"smoker": domain.Scalar("y"),
		"packs":  domain.Scalar("30"),
	})
	if err != nil {
		log.Fatal(err) // only a dependency cycle or cancellation fails the call
	}
	for _, e := range view.Errors() {
		fmt.Println(e)
	}

	report, err := eng.Score(ctx, doc, answers, nil)

Documents can be built with the dsl package, decoded from JSON or YAML files,
or served by any ports.DocumentLoader.
*/
package surveykit
