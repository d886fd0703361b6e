package observability

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestMonitoringManager_Counters(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelError))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mm.IncrMessagesCreated()
			mm.IncrNotificationsCreated()
			mm.IncrConflictsRetried()
			mm.AddMessagesDeleted(2)
		}()
	}
	wg.Wait()

	stats := mm.GetLatest()
	req.EqualValues(50, stats.MessagesCreated)
	req.EqualValues(50, stats.NotificationsCreated)
	req.EqualValues(50, stats.ConflictsRetried)
	req.EqualValues(100, stats.MessagesDeleted)
	req.Zero(stats.CascadesFailed)
}

func TestMonitoringManager_RecentOperations(t *testing.T) {
	req := require.New(t)
	mm := NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelError))

	for i := 0; i < maxRecentOperations+5; i++ {
		mm.AddOperation("send", fmt.Sprintf("m%d", i), "ok")
	}

	recent := mm.GetLatest().RecentOperations
	req.Len(recent, maxRecentOperations)
	// Most recent first
	req.Equal(fmt.Sprintf("m%d", maxRecentOperations+4), recent[0].SubjectID)
	req.Equal("m5", recent[len(recent)-1].SubjectID)

	// The returned slice is a copy
	recent[0].Status = "tampered"
	req.Equal("ok", mm.GetLatest().RecentOperations[0].Status)
}
