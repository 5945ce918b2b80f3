package dataset

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

// Store 是各性別 Dataset 的記憶化服務：第一次 Get 時解析，之後共用同一份唯讀資料。
// 可安全地被多個 goroutine 共用。
type Store struct {
	src  Source
	log  *slog.Logger
	memo *memo.Table[spec.Gender, *Dataset]
}

func NewStore(src Source, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Store{src: src, log: log}
	s.memo = memo.New(s.load)
	return s
}

func (s *Store) load(g spec.Gender) (*Dataset, error) {
	if !g.Known() {
		return nil, errs.With(errs.ErrUnknownGender, string(g))
	}
	name, raw, err := s.src.ReadTable(g, catalog.KindBody)
	if err != nil {
		return nil, err
	}
	d, err := Parse(g, name, raw)
	if err != nil {
		return nil, err
	}
	if d.Skipped > 0 {
		s.log.Warn("dataset rows skipped",
			slog.String("gender", string(g)),
			slog.String("file", name),
			slog.Int("skipped", d.Skipped),
		)
	}
	s.log.Debug("dataset loaded",
		slog.String("gender", string(g)),
		slog.String("file", name),
		slog.Int("rows", d.Len()),
	)
	return d, nil
}

// Get 取得 g 的 Dataset，必要時載入。
func (s *Store) Get(g spec.Gender) (*Dataset, error) {
	return s.memo.Get(g)
}

// Load 預先載入指定性別。
func (s *Store) Load(gs ...spec.Gender) error {
	return s.memo.Load(gs...)
}

// Reset 丟棄所有快取，下一次 Get 會重新解析。
func (s *Store) Reset() {
	s.memo.Reset()
}
