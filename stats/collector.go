package stats

// Collector 依插入順序收集具名數列。
//
// 不可併發寫入；Sweep 的每個 worker 各持一份，結束後以 Merge 合併。
type Collector struct {
	keys []string
	vals map[string][]float64
}

func NewCollector() *Collector {
	return &Collector{vals: make(map[string][]float64)}
}

func (c *Collector) Add(key string, v float64) {
	vs, ok := c.vals[key]
	if !ok {
		c.keys = append(c.keys, key)
	}
	c.vals[key] = append(vs, v)
}

// Merge 把 o 的資料併入 c；c 尚未見過的 key 依 o 的順序附加在後。
func (c *Collector) Merge(o *Collector) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if _, ok := c.vals[k]; !ok {
			c.keys = append(c.keys, k)
		}
		c.vals[k] = append(c.vals[k], o.vals[k]...)
	}
}

func (c *Collector) Keys() []string {
	return c.keys
}

func (c *Collector) Values(key string) []float64 {
	return c.vals[key]
}

// Summaries 依 key 順序回傳每個數列的描述統計。
func (c *Collector) Summaries() []ColumnSummary {
	out := make([]ColumnSummary, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, Describe(k, c.vals[k]))
	}
	return out
}
