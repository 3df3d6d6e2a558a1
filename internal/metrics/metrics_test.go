package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(GenerationsTotal.WithLabelValues("render", OutcomeSuccess))

	ObserveGeneration("render", OutcomeSuccess, 120*time.Millisecond)

	after := testutil.ToFloat64(GenerationsTotal.WithLabelValues("render", OutcomeSuccess))
	assert.Equal(t, before+1, after)
}
