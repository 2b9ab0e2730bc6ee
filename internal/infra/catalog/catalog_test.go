package infra_catalog

import (
	"testing"

	"github.com/humanbelnik/oscarparty/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CatalogSuite struct {
	suite.Suite
}

func TestCatalogSuite(t *testing.T) {
	suite.RunSuite(t, new(CatalogSuite))
}

func (s *CatalogSuite) TestLoad(t provider.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	t.Run("Should partition categories 8/16", func(t provider.T) {
		assert.Len(t, c.AboveTheLine(), model.AboveTheLineCount)
		assert.Len(t, c.BelowTheLine(), model.BelowTheLineCount)
		assert.Len(t, c.Categories(), 24)
		assert.Len(t, c.Films(), 50)
	})

	t.Run("Should keep document order", func(t provider.T) {
		above := c.AboveTheLine()
		assert.Equal(t, "bestPicture", above[0].ID)
		assert.Equal(t, "adaptedScreenplay", above[7].ID)
		assert.Equal(t, "animatedFeature", c.BelowTheLine()[0].ID)
		assert.Equal(t, "bp-1", above[0].Nominees[0].ID)
		assert.Len(t, above[0].Nominees, 10)
	})

	t.Run("Should resolve display modes", func(t provider.T) {
		for id, want := range map[string]model.DisplayMode{
			"bestPicture":     model.FilmFocused,
			"directing":       model.PersonFocused,
			"casting":         model.PersonFocused,
			"originalSong":    model.SongFocused,
			"liveActionShort": model.TitleOnly,
			"sound":           model.FilmFocused,
		} {
			cat, ok := c.Category(id)
			require.True(t, ok, id)
			assert.Equal(t, want, cat.DisplayMode, id)
		}
	})

	t.Run("Should resolve nominee against film", func(t provider.T) {
		n, ok := c.Nominee("actorLeading", "al-3")
		require.True(t, ok)
		r := c.Resolve("actorLeading", n)
		assert.Equal(t, "Ethan Hawke", r.Name)
		assert.Equal(t, "Blue Moon", r.Film)
		assert.Equal(t, 2025, r.Year)
		assert.Empty(t, r.Producers)
	})

	t.Run("Should report producers only for best picture", func(t provider.T) {
		n, _ := c.Nominee("bestPicture", "bp-9")
		r := c.Resolve("bestPicture", n)
		assert.Contains(t, r.Producers, "Ryan Coogler")

		n, _ = c.Nominee("internationalFeature", "int-3")
		r = c.Resolve("internationalFeature", n)
		assert.Empty(t, r.Producers)
		assert.Equal(t, "Norway", r.AdditionalInfo)
	})

	t.Run("Should list trailer films", func(t provider.T) {
		assert.Len(t, c.FilmsWithTrailers(), 10)
		featured := c.FeaturedFilms()
		assert.Len(t, featured, 10)
		assert.Equal(t, "Bugonia", featured[0])
	})
}

func (s *CatalogSuite) TestParseRejectsBrokenDocuments(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name string
		doc  string
	}{
		{
			name: "Should reject invalid toml",
			doc:  "[[films]\nid = ",
		},
		{
			name: "Should reject dangling film reference",
			doc: `
[[films]]
id = "a"
title = "A"
year = 2025

[[categories]]
id = "x"
name = "X"
above_the_line = true
  [[categories.nominees]]
  id = "x-1"
  name = "Someone"
  film = "missing"
`,
		},
		{
			name: "Should reject wrong partition",
			doc: `
[[films]]
id = "a"
title = "A"
year = 2025

[[categories]]
id = "x"
name = "X"
above_the_line = true
  [[categories.nominees]]
  id = "x-1"
  name = "Someone"
  film = "a"
`,
		},
		{
			name: "Should reject duplicate film",
			doc: `
[[films]]
id = "a"
title = "A"

[[films]]
id = "a"
title = "B"
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			c, err := Parse(tc.doc)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Nil(t, c)
		})
	}
}
