package chatbot

import "strings"

// Fallback is returned when no rule matches.
const Fallback = "I do not have information on this. Please talk with an expert."

// rule matches when every keyword appears in the lowercased input. Rules
// are evaluated in order; first match wins.
type rule struct {
	keywords [][]string // outer OR, inner AND
	answer   string
}

var rules = []rule{
	{
		keywords: [][]string{{"prepare before coming"}, {"pre-arrival"}},
		answer: "Before coming to France, you should: 1) Secure your student visa through Campus France, " +
			"2) Find accommodation (CROUS or private), 3) Arrange health insurance, 4) Open a French bank account, " +
			"5) Learn basic French, and 6) prepare financial proof (€615/month). Our checklist module guides you through each step!",
	},
	{
		keywords: [][]string{{"documents", "admission"}},
		answer: "For university admission, you typically need: Academic transcripts, diploma certificates, " +
			"language proficiency tests (DELF/DALF or IELTS/TOEFL), motivation letter, CV, passport copy, and " +
			"financial proof. Requirements vary by program and university.",
	},
	{
		keywords: [][]string{{"student visa"}},
		answer: "To apply for a student visa: 1) Get accepted by a French institution, 2) Register on Campus France, " +
			"3) Gather required documents (passport, photos, financial proof, health insurance, acceptance letter), " +
			"4) Schedule visa appointment, 5) Pay fees. Processing takes 2-4 weeks.",
	},
	{
		keywords: [][]string{{"accommodation"}},
		answer: "Accommodation options include: CROUS university housing (cheapest, €150-400/month), private " +
			"apartments (€400-800/month), homestays, and student residences. Apply early as demand is high, especially in Paris!",
	},
	{
		keywords: [][]string{{"financial preparations"}},
		answer: "Financial preparations: Prove €615/month for visa, open French bank account (BNP Paribas, " +
			"Société Générale recommended), get international student insurance, budget for deposits, and consider " +
			"part-time work options (20h/week allowed for non-EU students).",
	},
	{
		keywords: [][]string{{"visa renewal"}, {"residence permit"}},
		answer: "For visa/residence permit renewal: Apply 2-3 months before expiry, provide updated enrollment " +
			"certificate, financial proof, housing proof, health insurance, passport photos, and current residence " +
			"permit. Visit your local prefecture.",
	},
	{
		keywords: [][]string{{"caf"}},
		answer: "For CAF housing aid: Apply online at caf.fr after arrival, provide lease agreement, bank RIB, " +
			"residence permit copy, and enrollment certificate. Aid ranges €100-200/month and takes 2-3 months to process.",
	},
	{
		keywords: [][]string{{"documents translated"}},
		answer: "Document translation: Use certified translators (traducteur assermenté) for official documents. " +
			"Costs €20-50 per page. Some universities accept official English documents. Check with your institution first.",
	},
	{
		keywords: [][]string{{"bank account"}},
		answer: "To open a bank account: Bring passport, residence proof, student card, and initial deposit " +
			"(€10-300). Popular banks: BNP Paribas, Société Générale, LCL. Many offer student packages with reduced fees.",
	},
}

// Respond answers a question by keyword matching against the rule list.
func Respond(input string) string {
	lower := strings.ToLower(input)

	for _, r := range rules {
		for _, group := range r.keywords {
			if containsAll(lower, group) {
				return r.answer
			}
		}
	}
	return Fallback
}

func containsAll(input string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(input, kw) {
			return false
		}
	}
	return true
}

// ContextHint is the mini assistant shown inside module pages: a single
// canned hint keyed off the page title.
func ContextHint(pageContext string) string {
	switch {
	case strings.Contains(pageContext, "Pre-Arrival"):
		return "For pre-arrival help: Make sure to start your Campus France process early, gather all required " +
			"documents, and check visa processing times in your region."
	case strings.Contains(pageContext, "Post-Arrival"):
		return "For post-arrival help: Priority should be opening a bank account first, then applying for social " +
			"security, followed by health insurance and CAF applications."
	default:
		return "I'm a demo chatbot. For detailed help, please use the main Q&A section."
	}
}

// TrendingQuestions seeds the Q&A page with one-click prompts.
func TrendingQuestions() []string {
	return []string{
		"What should I prepare before coming to France?",
		"Which documents do I need for admission?",
		"How do I apply for a student visa?",
		"How do I find accommodation?",
		"What financial preparations should I make?",
		"How does visa renewal work?",
		"How do I apply for CAF?",
		"How do I open a bank account?",
	}
}
