// Package rules parses and evaluates the small expression language embedded in
// survey attributes.
//
// Four forms are supported:
//
//   - Ranges for scope, softScope, textLimit and answerLimit: "[1,10]", "[,5]", "[3,]".
//     Both bounds are inclusive and a blank side is unbounded.
//   - Conditions for visibleRule, requiredRule, validateRule and finishRule.
//   - Arithmetic for calculate.
//   - Templates for replaceTextRule: "Hello ${name}".
//
// Conditions and arithmetic share one grammar:
//
//	expr     = or
//	or       = and { ("||" | "or") and }
//	and      = not { ("&&" | "and") not }
//	not      = ("!" | "not") not | compare
//	compare  = sum [ ("==" | "!=" | "<" | "<=" | ">" | ">=" | "contains" | "in") sum ]
//	sum      = product { ("+" | "-") product }
//	product  = unary { ("*" | "/") unary }
//	unary    = "-" unary | primary
//	primary  = NUMBER | STRING | "true" | "false" | "${" id "}" | "$value"
//	         | func "(" expr ")" | "[" [ expr { "," expr } ] "]" | "(" expr ")"
//	func     = "answered" | "empty" | "count" | "len" | "sum" | "number"
//
// A reference to an unanswered (or hidden) node evaluates to Empty. Every
// comparison involving Empty is false, including "!=", so existence has to be
// tested explicitly with answered() or empty(). In arithmetic Empty counts as
// zero; division by zero and non-numeric operands produce NaN together with a
// Diagnostic instead of an error.
//
// Parsed trees are immutable and may be shared between goroutines.
package rules
