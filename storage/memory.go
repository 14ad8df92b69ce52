package storage

import (
	"fmt"
	"sync"
	"time"
)

const maxRecords = 1000

type MemoryStorage struct {
	records []MemeRecord
	seq     int
	mutex   sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) SaveRecord(record *MemeRecord) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.seq++
	if record.ID == "" {
		record.ID = fmt.Sprintf("mem-%d", m.seq)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	m.records = append(m.records, *record)
	// drop the oldest records over the limit
	if len(m.records) > maxRecords {
		m.records = m.records[len(m.records)-maxRecords:]
	}
	return nil
}

func (m *MemoryStorage) RecentRecords(limit int) ([]MemeRecord, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	result := make([]MemeRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.records[i])
	}
	return result, nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
