package assessments

import (
	"fmt"
	"strings"
)

// Disclaimer accompanies every symptom analysis response.
const Disclaimer = "This analysis is for informational purposes only and is not a diagnosis. Always consult a healthcare professional for medical advice."

// Keyword tiers checked in order; the first matching tier wins.
var (
	urgentKeywords   = []string{"chest pain", "difficulty breathing", "severe headache", "unconscious", "bleeding", "severe pain", "emergency"}
	moderateKeywords = []string{"fever", "cough", "headache", "nausea", "dizziness", "fatigue", "pain"}
	mildKeywords     = []string{"mild", "slight", "minor", "tired", "sleepy"}
)

// symptomAdvice adds per-symptom self-care lines on top of the tier advice.
var symptomAdvice = []struct {
	keyword string
	advice  []string
}{
	{"fever", []string{
		"Use fever-reducing medication as directed",
		"Keep cool and drink plenty of fluids",
	}},
	{"cough", []string{
		"Stay hydrated to help with throat irritation",
		"Consider cough drops or honey for throat relief",
	}},
	{"headache", []string{
		"Rest in a quiet, dark room",
		"Apply cold compress to forehead",
	}},
	{"nausea", []string{
		"Eat small, bland meals",
		"Avoid strong smells and spicy foods",
	}},
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// AnalyzeSymptoms produces a rule-based triage text for a free-form symptom
// description. It is deliberately conservative: unrecognized input falls
// through to general monitoring advice.
func AnalyzeSymptoms(symptoms string) string {
	text := strings.ToLower(symptoms)

	var urgency string
	var possibleCauses []string
	var generalAdvice []string

	switch {
	case containsAny(text, urgentKeywords):
		urgency = "High - Seek immediate medical attention"
		possibleCauses = []string{"Serious medical condition", "Emergency situation"}
		generalAdvice = []string{
			"Call emergency services (108) immediately",
			"Do not delay seeking medical help",
			"Stay calm and follow emergency protocols",
		}
	case containsAny(text, moderateKeywords):
		urgency = "Moderate - Schedule appointment soon"
		possibleCauses = []string{"Common illness", "Viral infection", "Stress-related condition"}
		generalAdvice = []string{
			"Rest and stay hydrated",
			"Monitor symptoms closely",
			"Schedule an appointment with your doctor within 24-48 hours",
			"Avoid strenuous activities",
		}
	case containsAny(text, mildKeywords):
		urgency = "Low - Monitor and self-care"
		possibleCauses = []string{"Minor condition", "Lifestyle factors", "Temporary discomfort"}
		generalAdvice = []string{
			"Get adequate rest",
			"Maintain a healthy diet",
			"Stay hydrated",
			"Monitor symptoms for 2-3 days",
			"See a doctor if symptoms worsen or persist",
		}
	default:
		urgency = "Low - General monitoring recommended"
		possibleCauses = []string{"Various possible causes"}
		generalAdvice = []string{
			"Keep track of your symptoms",
			"Note when symptoms occur and their duration",
			"Maintain a healthy lifestyle",
			"Consult a healthcare professional for proper evaluation",
		}
	}

	for _, entry := range symptomAdvice {
		if strings.Contains(text, entry.keyword) {
			generalAdvice = append(generalAdvice, entry.advice...)
		}
	}

	return fmt.Sprintf("Possible causes:\n%s\n\nUrgency: %s\n\nGeneral advice:\n%s",
		bulletList(possibleCauses), urgency, bulletList(generalAdvice))
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}
