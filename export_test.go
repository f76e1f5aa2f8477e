package mediumghost_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/mediumghost"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExport(t *testing.T) {
	t.Parallel()

	t.Run("wraps posts in import envelope", func(t *testing.T) {
		t.Parallel()

		now := time.Unix(1700000000, 0)
		posts := []*mediumghost.GhostPost{{UUID: "a"}, {UUID: "b"}}

		export := mediumghost.NewExport(posts, now)

		require.Len(t, export.DB, 1)
		assert.Equal(t, int64(1700000000), export.DB[0].Meta.ExportedOn)
		assert.Equal(t, "2.0.3", export.DB[0].Meta.Version)
		assert.Equal(t, posts, export.Posts())
	})

	t.Run("encodes empty post list as array", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(mediumghost.NewExport(nil, time.Unix(42, 0)))

		require.NoError(t, err)
		assert.JSONEq(t, `{"db":[{"meta":{"exported_on":42,"version":"2.0.3"},"data":{"posts":[]}}]}`, string(data))
	})
}
