package analysis

// documentAnalysisPrompt captures the instructions sent to a provider when
// analyzing study material. Keep updates centralized here so it is easy to
// tweak without hunting through call sites.
const documentAnalysisPrompt = `You are an assistant that analyzes study material for a student preparing for exams.

Given a document, identify the key topics it covers, estimate each topic's relative weight as a percentage, write a short summary, and estimate how likely each question format is to appear in an exam on this material.

You must respond ONLY with a JSON object like:
{"key_topics": ["Topic 1", "Topic 2"], "weightage": [60, 40], "summary": "short summary", "question_formats": {"Multiple Choice": 40, "Short Answer": 35, "Essay": 25}}

The weightage array matches key_topics by position and sums to 100. Now analyze this document:`

// chunkLimit bounds how much document text is sent to a provider. Study
// uploads can be arbitrarily large; the head of the document is enough for
// topic extraction.
const chunkLimit = 8000

func truncateForPrompt(text string) string {
	if len(text) <= chunkLimit {
		return text
	}
	return text[:chunkLimit]
}
