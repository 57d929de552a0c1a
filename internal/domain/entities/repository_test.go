//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/cup/internal/domain/entities"
)

func TestParseRepositoryReference(t *testing.T) {
	t.Parallel()

	t.Run("should split owner and name", func(t *testing.T) {
		t.Parallel()

		// when
		ref, err := entities.ParseRepositoryReference(" acme/widgets ")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.RepositoryReference{Owner: "acme", Name: "widgets"}, ref)
		assert.Equal(t, "acme/widgets", ref.String())
	})

	for _, spec := range []string{"", "widgets", "acme/", "/widgets", " / ", "acme/widgets/extra"} {
		t.Run("should reject "+spec, func(t *testing.T) {
			t.Parallel()

			// when
			_, err := entities.ParseRepositoryReference(spec)

			// then
			require.ErrorIs(t, err, entities.ErrInvalidRepository)
		})
	}
}
