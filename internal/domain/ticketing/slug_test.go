package ticketing

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestCreateSlug(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Tech Summit 2026", "tech-summit-2026"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Rock & Roll Night!", "rock-roll-night"},
		{"already-a-slug", "already-a-slug"},
		{"MiXeD CaSe", "mixed-case"},
		{"a---b", "a-b"},
		{"Gala", "gala"},
	}

	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			assert.Equal(t, tc.want, CreateSlug(tc.title))
		})
	}
}

func TestCreateSlugIdempotent(t *testing.T) {
	titles := []string{
		"Tech Summit 2026",
		"Rock & Roll Night!",
		"  spaces everywhere  ",
		"UPPER",
		"with-hyphens-already",
	}

	for _, title := range titles {
		once := CreateSlug(title)
		assert.Equal(t, once, CreateSlug(once), "slug of %q should be stable", title)
	}
}

func TestCreateSlugShape(t *testing.T) {
	titles := []string{
		"Tech Summit 2026",
		"Rock & Roll Night!",
		"A",
		"a b c d",
		"semi;colon:title",
	}

	for _, title := range titles {
		slug := CreateSlug(title)
		assert.True(t, slugShape.MatchString(slug), "slug %q of %q has invalid shape", slug, title)
	}

	// Punctuation-only titles have no sluggable characters at all; the event
	// constructor rejects them so an empty slug never reaches storage.
	for _, title := range []string{"!!!", "---", "&?;", "   "} {
		assert.Equal(t, "", CreateSlug(title))
	}
}
