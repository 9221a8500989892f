package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespond(t *testing.T) {
	tests := []struct {
		name     string
		question string
		contains string
	}{
		{"pre-arrival prep", "What should I prepare before coming to France?", "Campus France"},
		{"admission documents", "Which documents do I need for admission?", "Academic transcripts"},
		{"student visa", "How do I apply for a STUDENT VISA?", "Campus France"},
		{"accommodation", "How do I find accommodation in Paris?", "CROUS"},
		{"financial prep", "What financial preparations should I make?", "€615/month"},
		{"visa renewal", "How does visa renewal work?", "prefecture"},
		{"residence permit alias", "When should I renew my residence permit?", "prefecture"},
		{"caf", "How do I apply for CAF?", "caf.fr"},
		{"translation", "Where can I get my documents translated?", "traducteur assermenté"},
		{"bank account", "How do I open a bank account?", "BNP Paribas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Respond(tt.question), tt.contains)
		})
	}
}

func TestRespondFallback(t *testing.T) {
	assert.Equal(t, Fallback, Respond("What is the meaning of life?"))
	assert.Equal(t, Fallback, Respond(""))
}

func TestRespondCaseInsensitive(t *testing.T) {
	assert.Equal(t, Respond("how do i open a bank account?"), Respond("HOW DO I OPEN A BANK ACCOUNT?"))
}

func TestContextHint(t *testing.T) {
	assert.Contains(t, ContextHint("Pre-Arrival Checklist (Part 1)"), "Campus France")
	assert.Contains(t, ContextHint("Post-Arrival Checklist"), "bank account")
	assert.Contains(t, ContextHint("Packing Assistant"), "demo chatbot")
}

func TestTrendingQuestionsAllAnswerable(t *testing.T) {
	for _, q := range TrendingQuestions() {
		assert.NotEqual(t, Fallback, Respond(q), "trending question should have an answer: %s", q)
	}
}
