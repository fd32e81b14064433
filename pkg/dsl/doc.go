/*
Package dsl provides a Go DSL for programmatically constructing survey documents.

It lets hosts and tests define questions, rules and exam settings with a fluent
builder instead of hand-writing JSON or YAML. Build runs the same integrity
checks as the validate command, so a document that builds also evaluates.

Example usage:

	b := dsl.New("checkup")

	b.Add("smoker", domain.TypeRadio).
		Title("Do you smoke?").
		Option("y", "Yes").
		Option("n", "No").
		Required()

	b.Add("packs", domain.TypeFillBlank).
		DataType("number").
		VisibleWhen("${smoker} == 'y'").
		Scope("[1,10]", "between 1 and 10 packs")

	doc, err := b.Build()
	// ... pass doc to surveykit.Engine.Evaluate
*/
package dsl
