package parser

import (
	"testing"

	"github.com/runoshun/tasks-timeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkStage_Apply(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		visual   string
		outlinks []domain.Link
	}{
		{
			name:   "markdown link",
			text:   "Read [the plan](Projects/Plan.md) today",
			visual: "Read the plan today",
			outlinks: []domain.Link{
				{Path: "Projects/Plan", Display: "the plan", Type: domain.LinkFile, Index: 5},
			},
		},
		{
			name:   "wiki link with alias",
			text:   "Ask [[People/Sam|Sam]] about it",
			visual: "Ask Sam about it",
			outlinks: []domain.Link{
				{Path: "People/Sam", Display: "Sam", Type: domain.LinkFile, Index: 4},
			},
		},
		{
			name:   "header and block links",
			text:   "[[Plan#Next  steps]] then [[Plan2#^b-1]]",
			visual: "Plan#Next  steps then Plan2#^b-1",
			outlinks: []domain.Link{
				{Path: "Plan", Display: "Plan#Next  steps", Subpath: "Next steps", Type: domain.LinkHeader, Index: 0},
				{Path: "Plan2", Display: "Plan2#^b-1", Subpath: "b-1", Type: domain.LinkBlock, Index: 26},
			},
		},
		{
			name:   "embed",
			text:   "See ![[diagram.png]]",
			visual: "See diagram.png",
			outlinks: []domain.Link{
				{Path: "diagram.png", Display: "diagram.png", Type: domain.LinkFile, Index: 4, Embed: true},
			},
		},
		{
			name:   "leftmost wins across syntaxes",
			text:   "[[B]] and [a](A) and [[C]]",
			visual: "B and a and C",
			outlinks: []domain.Link{
				{Path: "B", Display: "B", Type: domain.LinkFile, Index: 0},
				{Path: "A", Display: "a", Type: domain.LinkFile, Index: 10},
				{Path: "C", Display: "C", Type: domain.LinkFile, Index: 21},
			},
		},
		{
			name:   "duplicate path is recorded once",
			text:   "[[Plan]] vs [plan](Plan)",
			visual: "Plan vs plan",
			outlinks: []domain.Link{
				{Path: "Plan", Display: "Plan", Type: domain.LinkFile, Index: 0},
			},
		},
		{
			name:   "url",
			text:   "Open [docs](https://example.com/a%20b#top)",
			visual: "Open docs",
			outlinks: []domain.Link{
				{Path: "https://example.com/a b#top", Display: "docs", Type: domain.LinkFile, Index: 5},
			},
		},
		{
			name:     "no links",
			text:     "Nothing to see",
			visual:   "Nothing to see",
			outlinks: []domain.Link{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTask(tt.text)
			require.NoError(t, NewLinkStage().Apply(task))

			assert.Equal(t, tt.visual, task.Visual)
			assert.Equal(t, tt.outlinks, task.Outlinks)
		})
	}
}

func TestLinkStage_KeyValueWinsTie(t *testing.T) {
	task := newTask("Pay [[due::2024-02-01]] via [[Bank]]")

	require.NoError(t, NewLinkStage().Apply(task))

	assert.Equal(t, "Pay [[due::2024-02-01]] via Bank", task.Visual)
	require.Len(t, task.Outlinks, 1)
	assert.Equal(t, "Bank", task.Outlinks[0].Path)

	require.NoError(t, NewKeyValueStage(nil, true).Apply(task))
	assert.Equal(t, "2024-02-01", dateString(task.Due))
	assert.Equal(t, "Pay  via Bank", task.Visual)
}
