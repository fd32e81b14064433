// Package schema describes the shape an answer must have for each question type.
//
// A document's answer contract maps node ids to shapes: a single text or
// numeric value, one option out of a declared set, a list of values, or a
// matrix of cells keyed by row id. The evaluator uses these shapes to reject
// malformed answers before any rule runs; hosts can use them to check an
// answer set on its own.
//
// Basic usage:
//
//	contract := schema.ForDocument(doc)
//	if err := schema.Validate(contract, answers); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // Handle each failing answer
//	    }
//	}
//
// Contracts can also be built by hand or parsed from shape names:
//
//	contract, err := schema.ParseTypeMap(map[string]string{
//	    "age":  "number",
//	    "pets": "[option]",
//	    "grid": "matrix<number>",
//	})
package schema
