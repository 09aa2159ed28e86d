package chat

import "strings"

// Intent names a canned analytical query the chat endpoint can answer
type Intent string

const (
	IntentOverdueBooks      Intent = "overdue_books"
	IntentDepartmentBorrows Intent = "department_borrows"
	IntentNewBooks          Intent = "new_books"
	IntentActiveStudents    Intent = "active_students"
	IntentPopularBooks      Intent = "popular_books"
	IntentUnknown           Intent = "unknown"
)

// intentPattern pairs an intent with its literal trigger phrases
type intentPattern struct {
	intent  Intent
	phrases []string
}

// intentPatterns is matched in declaration order; the first intent whose
// phrase occurs in the question wins, so order is significant for ties.
var intentPatterns = []intentPattern{
	{
		intent: IntentOverdueBooks,
		phrases: []string{
			"how many books are overdue",
			"list overdue books",
			"show me overdue books",
			"what books are overdue",
		},
	},
	{
		intent: IntentDepartmentBorrows,
		phrases: []string{
			"which department borrowed the most books",
			"department with most borrows",
			"top borrowing department",
			"most active department",
		},
	},
	{
		intent: IntentNewBooks,
		phrases: []string{
			"how many new books were added",
			"recently added books",
			"new books this week",
			"latest additions",
		},
	},
	{
		intent: IntentActiveStudents,
		phrases: []string{
			"most active students",
			"top borrowers",
			"students with most books",
			"who borrowed the most",
		},
	},
	{
		intent: IntentPopularBooks,
		phrases: []string{
			"most popular books",
			"most borrowed books",
			"top books",
			"frequently borrowed books",
		},
	},
}

// DetectIntent lower-cases and trims the question, then looks for the first
// trigger phrase contained in it. Substring match, not tokenized.
func DetectIntent(question string) Intent {
	question = strings.ToLower(strings.TrimSpace(question))

	for _, pattern := range intentPatterns {
		for _, phrase := range pattern.phrases {
			if strings.Contains(question, phrase) {
				return pattern.intent
			}
		}
	}

	return IntentUnknown
}
