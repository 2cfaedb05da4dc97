package extract_test

import (
	"testing"

	"certquiz"
	"certquiz/extract"

	"github.com/stretchr/testify/assert"
)

func numberedCard(text string) certquiz.RawCard {
	return certquiz.RawCard{HTML: "<div>" + text + "</div>", Text: text}
}

func TestDeduplicator_Keep(t *testing.T) {
	t.Parallel()

	d := extract.NewDeduplicator()

	assert.True(t, d.Keep(numberedCard("Question #1 What is X?")))
	assert.False(t, d.Keep(numberedCard("Question #1 What is X?")))
	assert.True(t, d.Keep(numberedCard("Question #2 What is Y?")))
	assert.Equal(t, 2, d.Seen())
}

func TestDeduplicator_KeepsUnfingerprintableCards(t *testing.T) {
	t.Parallel()

	d := extract.NewDeduplicator()

	assert.True(t, d.Keep(numberedCard("no number here")))
	assert.True(t, d.Keep(numberedCard("no number here")))
	assert.Equal(t, 0, d.Seen())
}

func TestDeduplicator_EquivalentFingerprintForms(t *testing.T) {
	t.Parallel()

	d := extract.NewDeduplicator()

	assert.True(t, d.Keep(numberedCard("Question #5 first form")))
	assert.False(t, d.Keep(numberedCard("Question 5 second form")))
	assert.False(t, d.Keep(numberedCard("Q5 third form")))
	assert.False(t, d.Keep(numberedCard("#5 fourth form")))
}

func TestDeduplicator_AcrossDocuments(t *testing.T) {
	t.Parallel()

	// One deduplicator threaded across documents catches repeats that
	// span document boundaries.
	d := extract.NewDeduplicator()

	docA := []certquiz.RawCard{
		numberedCard("Question #1 alpha"),
		numberedCard("Question #2 beta"),
	}
	docB := []certquiz.RawCard{
		numberedCard("Question #2 beta repeat"),
		numberedCard("Question #3 gamma"),
	}

	kept := d.Filter(docA)
	kept = append(kept, d.Filter(docB)...)

	assert.Len(t, kept, 3)
	assert.Equal(t, "Question #1 alpha", kept[0].Text)
	assert.Equal(t, "Question #2 beta", kept[1].Text)
	assert.Equal(t, "Question #3 gamma", kept[2].Text)
}

func TestDeduplicator_Filter_Idempotent(t *testing.T) {
	t.Parallel()

	cards := []certquiz.RawCard{
		numberedCard("Question #1 alpha"),
		numberedCard("Question #2 beta"),
		numberedCard("Question #1 alpha repeat"),
	}

	first := extract.NewDeduplicator().Filter(cards)
	second := extract.NewDeduplicator().Filter(first)

	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}
