package reporting

import (
	"testing"

	"portfoliohealth/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotSchedulerRejectsBadSchedule(t *testing.T) {
	scheduler := NewSnapshotScheduler(nil, utils.NewAppLogger())

	err := scheduler.Start("not a schedule")

	assert.Error(t, err)
}

func TestSnapshotSchedulerStartStop(t *testing.T) {
	scheduler := NewSnapshotScheduler(nil, utils.NewAppLogger())

	require.NoError(t, scheduler.Start("0 18 * * MON-FRI"))
	scheduler.Stop()
}
