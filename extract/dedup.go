// Package extract provides question-extraction orchestration.
// It coordinates card location, deduplication, structured and
// traditional extraction, validation, and storage of exam questions.
package extract

import "certquiz"

// Deduplicator filters question cards that repeat across pages and
// documents. Cards are fingerprinted by their question number; a card
// whose number has already been seen is dropped. Cards that carry no
// recognizable number are always kept.
//
// The seen-set persists for the lifetime of the Deduplicator, so one
// instance threaded across a multi-document batch dedups across
// document boundaries. Not safe for concurrent use.
type Deduplicator struct {
	seen map[int]bool
}

// NewDeduplicator creates a Deduplicator with an empty seen-set.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[int]bool)}
}

// Keep reports whether the card should be kept. The first card bearing
// a given question number is kept; later cards with the same number are
// dropped.
func (d *Deduplicator) Keep(card certquiz.RawCard) bool {
	number, ok := certquiz.ExtractQuestionNumber(card.Text)
	if !ok {
		return true
	}
	if d.seen[number] {
		return false
	}
	d.seen[number] = true
	return true
}

// Filter returns the cards that survive deduplication, preserving
// input order.
func (d *Deduplicator) Filter(cards []certquiz.RawCard) []certquiz.RawCard {
	kept := make([]certquiz.RawCard, 0, len(cards))
	for _, card := range cards {
		if d.Keep(card) {
			kept = append(kept, card)
		}
	}
	return kept
}

// Seen returns the number of distinct question numbers observed so far.
func (d *Deduplicator) Seen() int {
	return len(d.seen)
}
