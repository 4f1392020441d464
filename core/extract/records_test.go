package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikipipe/core"
)

func TestAttachmentsProjection(t *testing.T) {
	page := core.RawPage{
		Attachments: []core.RawRecord{
			{ID: "a1", Filename: "diagram.png", Size: 2048, MediaType: "image/png"},
			{ID: "a2"},
		},
	}

	got, err := Attachments(page)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "diagram.png", got[0].Filename)
	assert.Equal(t, int64(2048), got[0].Size)
	assert.Equal(t, "image/png", got[0].MediaType)

	assert.Equal(t, "a2", got[1].ID)
	assert.Empty(t, got[1].Filename)
	assert.Zero(t, got[1].Size)
}

func TestAttachmentsEmpty(t *testing.T) {
	got, err := Attachments(core.RawPage{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestCommentsNormalizesBodies(t *testing.T) {
	page := core.RawPage{
		Comments: []core.RawComment{
			{ID: "c1", Author: "ada", Created: "2026-01-02", Content: "<p>looks <b>good</b></p>"},
		},
	}

	got, err := Comments(page)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "ada", got[0].Author)
	assert.Equal(t, "looks good", got[0].Content)
}

func TestCommentsEmpty(t *testing.T) {
	got, err := Comments(core.RawPage{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
