package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const maxRecentOperations = 20

// RecentOperation is one committed write, kept for the operator view
type RecentOperation struct {
	Kind      string `json:"kind"`
	SubjectID string `json:"subject_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// EngineStats aggregates the counters of the consistency engine
type EngineStats struct {
	MessagesCreated      uint64 `json:"messages_created"`
	NotificationsCreated uint64 `json:"notifications_created"`
	HistoryRows          uint64 `json:"history_rows"`
	EditsSkipped         uint64 `json:"edits_skipped"`
	MessagesDeleted      uint64 `json:"messages_deleted"`
	MessagesRead         uint64 `json:"messages_read"`
	CascadesCompleted    uint64 `json:"cascades_completed"`
	CascadesFailed       uint64 `json:"cascades_failed"`
	ConflictsRetried     uint64 `json:"conflicts_retried"`
	SearchFailures       uint64 `json:"search_failures"`

	AllocMemMb       uint64            `json:"alloc_mem_mb"`
	NumGC            uint32            `json:"num_gc"`
	RecentOperations []RecentOperation `json:"recent_operations"`
}

// MonitoringManager is injected into the engine instead of process-wide state.
// Counters are atomic, the recent operations list is guarded by mu.
type MonitoringManager struct {
	log *slog.Logger
	mu  sync.RWMutex

	messagesCreated      uint64
	notificationsCreated uint64
	historyRows          uint64
	editsSkipped         uint64
	messagesDeleted      uint64
	messagesRead         uint64
	cascadesCompleted    uint64
	cascadesFailed       uint64
	conflictsRetried     uint64
	searchFailures       uint64

	recent []RecentOperation
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{
		log:    log,
		recent: make([]RecentOperation, 0),
	}
}

func (mm *MonitoringManager) IncrMessagesCreated() {
	atomic.AddUint64(&mm.messagesCreated, 1)
}

func (mm *MonitoringManager) IncrNotificationsCreated() {
	atomic.AddUint64(&mm.notificationsCreated, 1)
}

func (mm *MonitoringManager) IncrHistoryRows() {
	atomic.AddUint64(&mm.historyRows, 1)
}

func (mm *MonitoringManager) IncrEditsSkipped() {
	atomic.AddUint64(&mm.editsSkipped, 1)
}

func (mm *MonitoringManager) AddMessagesDeleted(n int) {
	atomic.AddUint64(&mm.messagesDeleted, uint64(n))
}

func (mm *MonitoringManager) IncrMessagesRead() {
	atomic.AddUint64(&mm.messagesRead, 1)
}

func (mm *MonitoringManager) IncrCascadesCompleted() {
	atomic.AddUint64(&mm.cascadesCompleted, 1)
}

func (mm *MonitoringManager) IncrCascadesFailed() {
	atomic.AddUint64(&mm.cascadesFailed, 1)
}

func (mm *MonitoringManager) IncrConflictsRetried() {
	atomic.AddUint64(&mm.conflictsRetried, 1)
}

func (mm *MonitoringManager) IncrSearchFailures() {
	atomic.AddUint64(&mm.searchFailures, 1)
}

// AddOperation records a write at the head of the recent list (thread-safe)
func (mm *MonitoringManager) AddOperation(kind, subjectID, status string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	operation := RecentOperation{
		Kind:      kind,
		SubjectID: subjectID,
		Status:    status,
		Timestamp: time.Now().Format("15:04:05"),
	}
	mm.recent = append([]RecentOperation{operation}, mm.recent...)

	// Keep only the last ones
	if len(mm.recent) > maxRecentOperations {
		mm.recent = mm.recent[:maxRecentOperations]
	}
}

// GetLatest returns a copy of every counter plus Go runtime memory figures.
func (mm *MonitoringManager) GetLatest() EngineStats {
	mm.mu.RLock()
	recent := make([]RecentOperation, len(mm.recent))
	copy(recent, mm.recent)
	mm.mu.RUnlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := EngineStats{
		MessagesCreated:      atomic.LoadUint64(&mm.messagesCreated),
		NotificationsCreated: atomic.LoadUint64(&mm.notificationsCreated),
		HistoryRows:          atomic.LoadUint64(&mm.historyRows),
		EditsSkipped:         atomic.LoadUint64(&mm.editsSkipped),
		MessagesDeleted:      atomic.LoadUint64(&mm.messagesDeleted),
		MessagesRead:         atomic.LoadUint64(&mm.messagesRead),
		CascadesCompleted:    atomic.LoadUint64(&mm.cascadesCompleted),
		CascadesFailed:       atomic.LoadUint64(&mm.cascadesFailed),
		ConflictsRetried:     atomic.LoadUint64(&mm.conflictsRetried),
		SearchFailures:       atomic.LoadUint64(&mm.searchFailures),
		AllocMemMb:           m.Alloc / 1024 / 1024,
		NumGC:                m.NumGC,
		RecentOperations:     recent,
	}
	mm.log.Debug("Stats requested",
		"messages_created", stats.MessagesCreated,
		"history_rows", stats.HistoryRows,
		"cascades_completed", stats.CascadesCompleted,
	)
	return stats
}
