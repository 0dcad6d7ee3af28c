package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRefCanonicalIDPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		ref    ProductRef
		wantID string
	}{
		{"plain id", ProductRef{ID: "a"}, "a"},
		{"productId alternate", ProductRef{ProductID: "b"}, "b"},
		{"mongo alternate", ProductRef{MongoID: "c"}, "c"},
		{"id wins over alternates", ProductRef{ID: "a", ProductID: "b", MongoID: "c"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.ref.Canonical()
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.ID)
		})
	}
}

func TestProductRefCanonicalImagePrecedence(t *testing.T) {
	p, err := ProductRef{ID: "a", ImageURL: "u.jpg"}.Canonical()
	require.NoError(t, err)
	assert.Equal(t, "u.jpg", p.Image)

	p, err = ProductRef{ID: "a", MainImage: "m.jpg"}.Canonical()
	require.NoError(t, err)
	assert.Equal(t, "m.jpg", p.Image)

	p, err = ProductRef{ID: "a", Image: "i.jpg", ImageURL: "u.jpg", MainImage: "m.jpg"}.Canonical()
	require.NoError(t, err)
	assert.Equal(t, "i.jpg", p.Image)
}

func TestProductRefCanonicalRejections(t *testing.T) {
	_, err := ProductRef{}.Canonical()
	assert.ErrorIs(t, err, ErrMissingProductID)

	_, err = ProductRef{ID: "a", Price: -1}.Canonical()
	assert.ErrorIs(t, err, ErrNegativePrice)
}
