// Package scoring computes exam scores for survey documents.
//
// Only exam-type nodes are scored. Each node combines a match rule
// (completeSame or contain) with a score mode:
//
//	onlyOne        the single correct option or answer, full score or zero
//	selectAll      every correct option and nothing else, full score or zero
//	selectCorrect  examScore/|correct| per hit minus the same per wrong pick;
//	               for blanks, examScore × matched/blanks
//	select         per-option or per-blank weights from the data source
//	manual         left for a human; see WithManualScores
//	none           not scored
//
// Awarded scores are always within [0, examScore]. Unanswered nodes score
// zero. Scoring never mutates the document or the answers.
package scoring
