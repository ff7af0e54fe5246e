// Package api is the call surface the view layer uses: typed question
// queries and mutations routed through the tag-invalidating cache.
//
// Tagging rules (type "Questions"):
//
//	getQuestions     provides Questions:<id> for every record, plus Questions:LIST
//	getQuestion(id)  provides Questions:<id>
//	addQuestion      invalidates Questions:LIST
//	updateQuestion   invalidates Questions:<id>
//	deleteQuestion   invalidates Questions:<id> and Questions:LIST
//
// A failed list fetch still provides Questions:LIST, so any collection
// change retries it.
//
// Values returned to callers are copies; mutating them never alters
// cached data.
package api
