package domain_test

import (
	"testing"

	"mediasend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_SetProgress(t *testing.T) {
	t.Run("loaded never exceeds total", func(t *testing.T) {
		u := domain.NewUpload("!room", nil, "photo.jpg", 1000, nil)

		u.SetProgress(1500, 1000)

		loaded, total := u.Progress()
		assert.Equal(t, int64(1000), loaded)
		assert.Equal(t, int64(1000), total)
	})

	t.Run("total never decreases", func(t *testing.T) {
		u := domain.NewUpload("!room", nil, "photo.jpg", 1000, nil)

		u.SetProgress(100, 2000)
		u.SetProgress(200, 500)

		loaded, total := u.Progress()
		assert.Equal(t, int64(200), loaded)
		assert.Equal(t, int64(2000), total)
	})

	t.Run("loaded tracks callbacks", func(t *testing.T) {
		u := domain.NewUpload("!room", nil, "photo.jpg", 1000, nil)

		for _, loaded := range []int64{0, 250, 500, 1000} {
			u.SetProgress(loaded, 1000)
			got, total := u.Progress()
			require.LessOrEqual(t, got, total)
			assert.Equal(t, loaded, got)
		}
	})
}

func TestUpload_Cancel(t *testing.T) {
	t.Run("fires abort handle once", func(t *testing.T) {
		aborted := 0
		u := domain.NewUpload("!room", nil, "photo.jpg", 1000, func() { aborted++ })

		assert.True(t, u.Cancel())
		assert.False(t, u.Cancel())

		assert.Equal(t, 1, aborted)
		assert.True(t, u.Canceled())
	})

	t.Run("nil abort handle is safe", func(t *testing.T) {
		u := domain.NewUpload("!room", nil, "photo.jpg", 1000, nil)

		assert.True(t, u.Cancel())
		assert.True(t, u.Canceled())
	})
}

func TestRelation_Matches(t *testing.T) {
	thread := &domain.Relation{Type: domain.RelationTypeThread, EventID: "$root"}

	assert.True(t, thread.Matches(&domain.Relation{Type: domain.RelationTypeThread, EventID: "$root"}))
	assert.False(t, thread.Matches(&domain.Relation{Type: domain.RelationTypeThread, EventID: "$other"}))
	assert.False(t, thread.Matches(&domain.Relation{Type: "m.reference", EventID: "$root"}))
	assert.False(t, thread.Matches(nil))
	assert.True(t, (*domain.Relation)(nil).Matches(nil))
}

func TestRelation_ThreadID(t *testing.T) {
	assert.Equal(t, "$root", (&domain.Relation{Type: domain.RelationTypeThread, EventID: "$root"}).ThreadID())
	assert.Equal(t, "", (&domain.Relation{Type: "m.reference", EventID: "$root"}).ThreadID())
	assert.Equal(t, "", (*domain.Relation)(nil).ThreadID())
}
