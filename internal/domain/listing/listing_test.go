package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T) *Listing {
	t.Helper()
	l, err := NewListing(
		3,
		"Sunny two bedroom apartment",
		"Close to the **park**.",
		"<p>Close to the <strong>park</strong>.</p>",
		PropertyApartment,
		OfferSale,
		250_000_00,
		"USD",
		"Springfield",
		"IL",
		"12 Elm St",
		2, 1, 68.5,
	)
	require.NoError(t, err)
	return l
}

func TestNewListing(t *testing.T) {
	l := newDraft(t)

	assert.Equal(t, StatusDraft, l.Status())
	assert.False(t, l.Featured())
	assert.Empty(t, l.Images())
	assert.Equal(t, 1, l.Version())
}

func TestNewListing_Validation(t *testing.T) {
	_, err := NewListing(0, "t", "", "", PropertyHouse, OfferSale, 1, "USD", "c", "", "", 0, 0, 0)
	assert.Error(t, err, "owner required")

	_, err = NewListing(1, "", "", "", PropertyHouse, OfferSale, 1, "USD", "c", "", "", 0, 0, 0)
	assert.Error(t, err, "title required")

	_, err = NewListing(1, "t", "", "", PropertyType("castle"), OfferSale, 1, "USD", "c", "", "", 0, 0, 0)
	assert.Error(t, err, "property type")

	_, err = NewListing(1, "t", "", "", PropertyHouse, OfferSale, -1, "USD", "c", "", "", 0, 0, 0)
	assert.Error(t, err, "negative price")
}

func TestListing_PublishAndArchive(t *testing.T) {
	l := newDraft(t)

	require.NoError(t, l.Publish())
	assert.Equal(t, StatusPublished, l.Status())

	require.NoError(t, l.Publish(), "publishing twice is a no-op")

	l.Archive()
	assert.Equal(t, StatusArchived, l.Status())

	err := l.Publish()
	assert.Error(t, err, "archived listings stay archived")
}

func TestListing_SetFeatured(t *testing.T) {
	l := newDraft(t)

	err := l.SetFeatured(true)
	assert.Error(t, err, "drafts cannot be featured")

	require.NoError(t, l.Publish())
	require.NoError(t, l.SetFeatured(true))
	assert.True(t, l.Featured())

	l.Archive()
	assert.False(t, l.Featured(), "archiving releases the featured slot")
}

func TestListing_Images(t *testing.T) {
	l := newDraft(t)

	img, err := NewImage("https://cdn.example/1.jpg", 0)
	require.NoError(t, err)
	require.NoError(t, img.SetID(11))
	require.NoError(t, l.AddImage(img))
	assert.Len(t, l.Images(), 1)

	require.NoError(t, l.RemoveImage(11))
	assert.Empty(t, l.Images())

	assert.Error(t, l.RemoveImage(99))
}

func TestNewImage_Validation(t *testing.T) {
	_, err := NewImage("ftp://cdn.example/1.jpg", 0)
	assert.Error(t, err)

	_, err = NewImage("https://cdn.example/1.jpg", -1)
	assert.Error(t, err)
}
