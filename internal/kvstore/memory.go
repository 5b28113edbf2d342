package kvstore

import (
	"encoding/json"
	"sync"
)

// Memory is an in-process Store used in tests and single-node setups.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(appID, key string, dest interface{}) (bool, error) {
	m.mu.RLock()
	payload, ok := m.blobs[appID+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *Memory) Set(appID, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.blobs[appID+"/"+key] = payload
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(appID, key string) error {
	m.mu.Lock()
	delete(m.blobs, appID+"/"+key)
	m.mu.Unlock()
	return nil
}
