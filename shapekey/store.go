package shapekey

import (
	"log/slog"

	"github.com/zintix-labs/bodylab/catalog"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/sdk/memo"
	"github.com/zintix-labs/bodylab/spec"
)

// Source 提供原始資料表內容，*catalog.Catalog 即為實作。
type Source interface {
	ReadTable(g spec.Gender, kind catalog.Kind) (name string, raw []byte, err error)
}

// Store 是各性別形變表的記憶化服務，可被多個 goroutine 共用。
type Store struct {
	src  Source
	log  *slog.Logger
	memo *memo.Table[spec.Gender, *Table]
}

func NewStore(src Source, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Store{src: src, log: log}
	s.memo = memo.New(s.load)
	return s
}

func (s *Store) load(g spec.Gender) (*Table, error) {
	if !g.Known() {
		return nil, errs.With(errs.ErrUnknownGender, string(g))
	}
	name, raw, err := s.src.ReadTable(g, catalog.KindShapeKeys)
	if err != nil {
		return nil, err
	}
	t, err := Parse(g, name, raw)
	if err != nil {
		return nil, err
	}
	if t.Skipped > 0 {
		s.log.Warn("shape key breakpoints skipped",
			slog.String("gender", string(g)),
			slog.String("file", name),
			slog.Int("skipped", t.Skipped),
		)
	}
	s.log.Debug("shape key table loaded",
		slog.String("gender", string(g)),
		slog.String("file", name),
		slog.Int("axes", len(t.curves)),
	)
	return t, nil
}

func (s *Store) Get(g spec.Gender) (*Table, error) {
	return s.memo.Get(g)
}

func (s *Store) Load(gs ...spec.Gender) error {
	return s.memo.Load(gs...)
}

func (s *Store) Reset() {
	s.memo.Reset()
}
