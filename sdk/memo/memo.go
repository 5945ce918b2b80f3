// Package memo 提供「每個 key 只建一次」的唯讀快取，並以 Reset 明確控制生命週期。
//
// 參考資料表（人體測量資料、形變表）都是解析一次、之後只讀的資料；
// 以 Table 包起來後，快取何時建立、何時清除都由持有者決定，測試之間也能 Reset。
package memo

import (
	"sync"
)

// Table 是以 key 分片、首次取用才載入的快取。
//
// 載入失敗不會被快取，下一次 Get 會重試。
// 命中快取只取讀鎖；載入過程持有寫鎖，因此同一時間只會有一個 loader 在執行。
type Table[K comparable, V any] struct {
	mu    sync.RWMutex
	load  func(K) (V, error)
	items map[K]V
	loads int
}

func New[K comparable, V any](load func(K) (V, error)) *Table[K, V] {
	if load == nil {
		panic("memo: nil loader")
	}
	return &Table[K, V]{load: load, items: make(map[K]V)}
}

// Get 回傳 k 的快取值，不存在時呼叫 loader 建立。
func (t *Table[K, V]) Get(k K) (V, error) {
	t.mu.RLock()
	v, ok := t.items[k]
	t.mu.RUnlock()
	if ok {
		return v, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// 等鎖期間可能已被其他 goroutine 載入
	if v, ok := t.items[k]; ok {
		return v, nil
	}
	v, err := t.load(k)
	if err != nil {
		var zero V
		return zero, err
	}
	t.items[k] = v
	t.loads++
	return v, nil
}

// Load 預先載入 keys，遇到第一個錯誤即停止。
func (t *Table[K, V]) Load(keys ...K) error {
	for _, k := range keys {
		if _, err := t.Get(k); err != nil {
			return err
		}
	}
	return nil
}

// Loaded 回報 k 是否已在快取中。
func (t *Table[K, V]) Loaded(k K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.items[k]
	return ok
}

// Loads 回傳成功載入的次數（Reset 不歸零）。
func (t *Table[K, V]) Loads() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loads
}

// Reset 清空快取，下一次 Get 會重新載入。
func (t *Table[K, V]) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.items)
}
