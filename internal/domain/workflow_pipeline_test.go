package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	m "onelevel.dev/pkg/onelevel/internal/model"
)

func TestMergeErrorChannels(t *testing.T) {
	t.Run("forwards first error", func(t *testing.T) {
		ch1 := make(chan error, 1)
		ch2 := make(chan error)
		boom := errors.New("boom")

		ch1 <- boom

		merged := mergeErrorChannels(ch1, ch2)

		err, ok := <-merged
		assert.True(t, ok)
		assert.ErrorIs(t, err, boom)

		_, ok = <-merged
		assert.False(t, ok)
	})

	t.Run("closes when both inputs close", func(t *testing.T) {
		ch1 := make(chan error)
		ch2 := make(chan error)
		close(ch1)
		close(ch2)

		_, ok := <-mergeErrorChannels(ch1, ch2)
		assert.False(t, ok)
	})
}

func TestStreamSources(t *testing.T) {
	t.Run("streams every source", func(t *testing.T) {
		sources := []m.Source{
			{Origin: &m.File{FullPath: "A.java"}},
			{Origin: &m.File{FullPath: "B.java"}},
		}

		ch, errs := streamSources(context.Background(), sources, 1)

		var got []m.Path
		for source := range ch {
			got = append(got, source.Origin.FullPath)
		}

		assert.Equal(t, []m.Path{"A.java", "B.java"}, got)

		_, ok := <-errs
		assert.False(t, ok)
	})

	t.Run("reports cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sources := make([]m.Source, 10)
		ch, errs := streamSources(ctx, sources, 0)

		for range ch {
		}

		assert.ErrorIs(t, <-errs, context.Canceled)
	})
}

func TestCollectBatch(t *testing.T) {
	t.Run("gathers burst until quiet", func(t *testing.T) {
		changes := make(chan m.Path, 3)
		changes <- "B.java"
		changes <- "A.java"

		batch := collectBatch(context.Background(), "A.java", changes, 20*time.Millisecond)

		assert.Equal(t, map[m.Path]bool{"A.java": true, "B.java": true}, batch)
	})

	t.Run("stops on closed stream", func(t *testing.T) {
		changes := make(chan m.Path)
		close(changes)

		batch := collectBatch(context.Background(), "A.java", changes, time.Hour)

		assert.Equal(t, map[m.Path]bool{"A.java": true}, batch)
	})
}
