package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtxerr/tsmap/internal/errors"
	"github.com/xtxerr/tsmap/internal/store"
)

func TestRun(t *testing.T) {
	for _, backend := range []store.Backend{store.BackendHash, store.BackendTree, store.BackendSeq} {
		t.Run(string(backend), func(t *testing.T) {
			report, err := Run(Config{
				Backend:      backend,
				Writers:      2,
				Readers:      1,
				OpsPerWriter: 200,
				MaxOffset:    time.Second,
				RangeSpan:    time.Minute,
			})
			require.NoError(t, err)

			assert.Equal(t, backend, report.Backend)
			assert.Equal(t, 400, report.Entries, "every insert must land")
			assert.Equal(t, int64(400), report.Insert.Count)
			assert.Equal(t, int64(200), report.Query.Count)
			assert.Equal(t, int64(600), report.Ops)
			assert.Greater(t, report.Elapsed, time.Duration(0))

			// Percentiles are monotone.
			assert.LessOrEqual(t, report.Insert.P50, report.Insert.P95)
			assert.LessOrEqual(t, report.Insert.P95, report.Insert.P99)
		})
	}
}

func TestRun_NoReaders(t *testing.T) {
	report, err := Run(Config{
		Backend:      store.BackendHash,
		Writers:      1,
		Readers:      0,
		OpsPerWriter: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), report.Insert.Count)
	assert.Equal(t, int64(0), report.Query.Count)
}

func TestRun_UnknownBackend(t *testing.T) {
	_, err := Run(Config{Backend: store.Backend("bogus"), Writers: 1, OpsPerWriter: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnknownBackend))
}
