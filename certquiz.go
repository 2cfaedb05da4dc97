// Package certquiz extracts multiple-choice exam questions from
// ExamTopics-style HTML pages, persists them as structured JSON records,
// and serves them back through an interactive terminal quiz session.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package certquiz
