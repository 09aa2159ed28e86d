package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Intent
	}{
		{"overdue direct", "How many books are overdue?", IntentOverdueBooks},
		{"overdue embedded", "could you please list overdue books for me", IntentOverdueBooks},
		{"department", "Which department borrowed the most books?", IntentDepartmentBorrows},
		{"department alias", "what is the top borrowing department", IntentDepartmentBorrows},
		{"new books", "how many new books were added recently", IntentNewBooks},
		{"new books alias", "any latest additions?", IntentNewBooks},
		{"active students", "show me the most active students", IntentActiveStudents},
		{"active students alias", "who are the top borrowers", IntentActiveStudents},
		{"popular books", "what are the most popular books", IntentPopularBooks},
		{"popular books alias", "list frequently borrowed books", IntentPopularBooks},
		{"case insensitive", "LIST OVERDUE BOOKS", IntentOverdueBooks},
		{"whitespace trimmed", "   most popular books   ", IntentPopularBooks},
		{"unknown", "tell me a joke", IntentUnknown},
		{"empty", "", IntentUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectIntent(tc.question))
		})
	}
}

func TestDetectIntent_DeclarationOrderBreaksTies(t *testing.T) {
	// Contains phrases for two intents; the earlier pattern group wins
	question := "list overdue books and also the most popular books"
	assert.Equal(t, IntentOverdueBooks, DetectIntent(question))
}
