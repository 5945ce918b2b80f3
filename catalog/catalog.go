// Package catalog 管理參考資料表的來源：哪些 fs.FS、哪個性別的哪一張表對應到哪個檔名。
//
// Catalog 只負責「找到並讀出原始位元組」，解析交給 dataset / shapekey。
package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/spec"
)

// Kind 區分資料表種類。
type Kind string

const (
	KindBody      Kind = "body"
	KindShapeKeys Kind = "shape_keys"
)

var (
	ErrDupEntry = errs.NewFatal("duplicate table entry")
	ErrNotFound = errs.NewWarn("table not registered")
)

type Entry struct {
	Gender   spec.Gender `json:"gender"`
	Kind     Kind        `json:"kind"`
	FileName string      `json:"file"`
}

type key struct {
	g spec.Gender
	k Kind
}

type Catalog struct {
	entries map[key]Entry
	keys    []key
	config  *multiFS
	frozen  bool
}

func New(src ...fs.FS) (*Catalog, error) {
	mfs, err := newMultiFS(src...)
	if err != nil {
		return nil, errs.Wrap(err, "can not create catalog")
	}
	return &Catalog{
		entries: map[key]Entry{},
		keys:    make([]key, 0, 4),
		config:  mfs,
	}, nil
}

// Register 一次性登記多筆資料表；任一筆不合法則全部不寫入。
func (c *Catalog) Register(ents ...Entry) error {
	if c.frozen {
		return errs.ErrFrozen
	}
	seen := map[key]struct{}{}
	for _, e := range ents {
		if !e.Gender.Known() {
			return errs.With(errs.ErrUnknownGender, string(e.Gender))
		}
		if e.Kind != KindBody && e.Kind != KindShapeKeys {
			return errs.Fatalf("unknown table kind: %q", e.Kind)
		}
		if err := validFileName(e.FileName); err != nil {
			return err
		}
		if _, ok := c.config.index[e.FileName]; !ok {
			return errs.Fatalf("table file not found: %s", e.FileName)
		}
		k := key{e.Gender, e.Kind}
		if _, ok := c.entries[k]; ok {
			return errs.WrapWithExtra(ErrDupEntry, "register table", fmt.Sprintf("%s/%s", e.Gender, e.Kind))
		}
		if _, ok := seen[k]; ok {
			return errs.WrapWithExtra(ErrDupEntry, "register table", fmt.Sprintf("%s/%s", e.Gender, e.Kind))
		}
		seen[k] = struct{}{}
	}
	for _, e := range ents {
		k := key{e.Gender, e.Kind}
		c.entries[k] = e
		c.keys = append(c.keys, k)
	}
	sort.Slice(c.keys, func(i, j int) bool {
		if c.keys[i].g != c.keys[j].g {
			return c.keys[i].g < c.keys[j].g
		}
		return c.keys[i].k < c.keys[j].k
	})
	return nil
}

// RegisterSetting 依設定檔宣告的 tables 登記所有性別的資料表。
func (c *Catalog) RegisterSetting(es *spec.EngineSetting) error {
	genders := make([]spec.Gender, 0, len(es.Genders))
	for g := range es.Genders {
		genders = append(genders, g)
	}
	sort.Slice(genders, func(i, j int) bool { return genders[i] < genders[j] })

	ents := make([]Entry, 0, 2*len(genders))
	for _, g := range genders {
		t := es.Genders[g].Tables
		ents = append(ents,
			Entry{Gender: g, Kind: KindBody, FileName: t.Body},
			Entry{Gender: g, Kind: KindShapeKeys, FileName: t.ShapeKeys},
		)
	}
	return c.Register(ents...)
}

func (c *Catalog) Get(g spec.Gender, kind Kind) (Entry, bool) {
	e, ok := c.entries[key{g, kind}]
	return e, ok
}

func (c *Catalog) All() []Entry {
	out := make([]Entry, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.entries[k])
	}
	return out
}

// ReadTable 讀出 g 的 kind 資料表原始內容，並回傳檔名供解析器判斷格式。
func (c *Catalog) ReadTable(g spec.Gender, kind Kind) (string, []byte, error) {
	e, ok := c.Get(g, kind)
	if !ok {
		return "", nil, errs.With(ErrNotFound, fmt.Sprintf("%s/%s", g, kind))
	}
	raw, err := c.ReadFile(e.FileName)
	if err != nil {
		return "", nil, err
	}
	return e.FileName, raw, nil
}

func (c *Catalog) ReadFile(name string) ([]byte, error) {
	src, ok := c.config.GetFS(name)
	if !ok {
		return nil, errs.Warnf("file does not exist in catalog: %s", name)
	}
	raw, err := fs.ReadFile(src, name)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "catalog read file error", name)
	}
	return raw, nil
}

// ReadSetting 讀取並解析引擎設定檔（.yaml/.yml/.json）。
func (c *Catalog) ReadSetting(name string) (*spec.EngineSetting, error) {
	raw, err := c.ReadFile(name)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return spec.GetEngineSettingByYAML(raw)
	case ".json":
		return spec.GetEngineSettingByJSON(raw)
	default:
		return nil, errs.Fatalf("unsupported setting format: %q", name)
	}
}

// Files 列出所有來源中可辨識的檔名（已排序）。
func (c *Catalog) Files() []string {
	out := make([]string, 0, len(c.config.index))
	for name := range c.config.index {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Freeze() {
	c.frozen = true
}

func (c *Catalog) IsFrozen() bool {
	return c.frozen
}

func validFileName(file string) error {
	if file == "" {
		return errs.NewFatal("empty table filename")
	}
	if strings.ContainsAny(file, `/\:`) {
		return errs.Fatalf("invalid table filename: %q (must be a basename; no / \\ :)", file)
	}
	if !knownExt(file) {
		return errs.Fatalf("invalid table filename: %q (must end with .yaml, .yml, .json or .csv)", file)
	}
	if strings.HasPrefix(file, ".") {
		return errs.Fatalf("invalid table filename: %q (cannot start with '.')", file)
	}
	return nil
}

func knownExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json", ".csv":
		return true
	}
	return false
}

type multiFS struct {
	src   []fs.FS
	index map[string]int // name -> src index
}

func newMultiFS(src ...fs.FS) (*multiFS, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("no fs provided")
	}
	for i, s := range src {
		if s == nil {
			return nil, errs.Fatalf("fs[%d] is nil", i)
		}
	}

	m := &multiFS{
		src:   src,
		index: make(map[string]int, 16),
	}

	for i := range src {
		err := fs.WalkDir(src[i], ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// 資料來源必須是扁平目錄，只允許根目錄 "."
				if path == "." {
					return nil
				}
				return errs.Fatalf("table FS must be flat (no subdirectories): %q", path)
			}
			if strings.HasPrefix(path, ".") || !knownExt(path) {
				return nil
			}
			if prev, ok := m.index[path]; ok {
				return errs.Fatalf("duplicate file %q in fs[%d] and fs[%d]", path, prev, i)
			}
			m.index[path] = i
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *multiFS) GetFS(name string) (fs.FS, bool) {
	if id, ok := m.index[name]; ok {
		return m.src[id], true
	}
	return nil, false
}
