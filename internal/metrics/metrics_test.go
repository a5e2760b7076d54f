package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	domainerrors "github.com/curatorapp/curator-server/internal/errors"
)

func TestObserveOperation_CountsErrorsByCode(t *testing.T) {
	before := testutil.ToFloat64(OperationErrors.WithLabelValues("test_op", "NOT_FOUND"))

	var err error = domainerrors.NotFound("gone")
	ObserveOperation("test_op", "quote", time.Now(), &err)

	after := testutil.ToFloat64(OperationErrors.WithLabelValues("test_op", "NOT_FOUND"))
	assert.Equal(t, before+1, after)
}

func TestObserveOperation_SuccessRecordsNoError(t *testing.T) {
	before := testutil.ToFloat64(OperationErrors.WithLabelValues("ok_op", "OTHER"))

	var err error
	ObserveOperation("ok_op", "story", time.Now(), &err)

	assert.Equal(t, before, testutil.ToFloat64(OperationErrors.WithLabelValues("ok_op", "OTHER")))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "FORBIDDEN", errorCode(domainerrors.Forbidden("no")))
	assert.Equal(t, "OTHER", errorCode(errors.New("plain")))
}

func TestRecordFavoriteToggle(t *testing.T) {
	added := testutil.ToFloat64(FavoriteToggles.WithLabelValues("added"))
	RecordFavoriteToggle(true)
	assert.Equal(t, added+1, testutil.ToFloat64(FavoriteToggles.WithLabelValues("added")))
}
