package bodylab

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/slider"
	"github.com/zintix-labs/bodylab/spec"
	"github.com/zintix-labs/bodylab/stats"
)

// SweepOptions 描述一次格點掃描。
type SweepOptions struct {
	Gender   spec.Gender
	Heights  stats.Grid
	Weights  stats.Grid
	Workers  int
	Progress io.Writer // nil 時不顯示進度條
}

type sweepPoint struct {
	height, weight float64
}

// sweepWorker 是單一 worker 的累積結果。
type sweepWorker struct {
	baseline *stats.Collector
	ranges   *stats.Collector
	morphs   *stats.Collector
	approx   int
	failed   int
}

func newSweepWorker() *sweepWorker {
	return &sweepWorker{
		baseline: stats.NewCollector(),
		ranges:   stats.NewCollector(),
		morphs:   stats.NewCollector(),
	}
}

// Sweep 在 Heights × Weights 格點上評估引擎：每一點推估 baseline、計算滑桿區間，
// 並以 baseline 本身解出所有形變權重，最後彙總成 SweepReport。
//
// ctx 取消時停止派發新的格點並回傳 ctx.Err()。
func (b *Bodylab) Sweep(ctx context.Context, opt SweepOptions) (*stats.SweepReport, time.Duration, error) {
	if _, ok := b.es.Gender(opt.Gender); !ok {
		return nil, 0, errs.With(errs.ErrUnknownGender, string(opt.Gender))
	}
	if opt.Workers <= 0 {
		return nil, 0, errs.NewWarn("workers must > 0")
	}
	hs, ws := opt.Heights.Points(), opt.Weights.Points()
	total := len(hs) * len(ws)
	if err := b.Load(opt.Gender); err != nil {
		return nil, 0, err
	}

	bar := pb.New(total)
	if opt.Progress == nil {
		bar.SetWriter(io.Discard)
	} else {
		bar.SetWriter(opt.Progress)
	}
	bar.Start()

	jobs := make(chan sweepPoint, 2048)
	workers := make([]*sweepWorker, opt.Workers)
	var done atomic.Int64
	wg := new(sync.WaitGroup)
	wg.Add(opt.Workers)
	for i := range workers {
		workers[i] = newSweepWorker()
		go func(sw *sweepWorker) {
			defer wg.Done()
			for p := range jobs {
				b.sweepOne(sw, opt.Gender, p)
				done.Add(1)
				bar.Increment()
			}
		}(workers[i])
	}

	var cerr error
feed:
	for _, h := range hs {
		for _, w := range ws {
			if err := ctx.Err(); err != nil {
				cerr = err
				break feed
			}
			select {
			case <-ctx.Done():
				cerr = ctx.Err()
				break feed
			case jobs <- sweepPoint{height: h, weight: w}:
			}
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	if cerr != nil {
		return nil, used, cerr
	}

	rep := &stats.SweepReport{
		Name:    b.es.Name,
		Gender:  opt.Gender,
		Heights: opt.Heights,
		Weights: opt.Weights,
		Points:  int(done.Load()),
	}
	merged := newSweepWorker()
	for _, sw := range workers {
		merged.baseline.Merge(sw.baseline)
		merged.ranges.Merge(sw.ranges)
		merged.morphs.Merge(sw.morphs)
		merged.approx += sw.approx
		merged.failed += sw.failed
	}
	rep.Approximate = merged.approx
	rep.Failed = merged.failed
	rep.Fill(merged.baseline, merged.ranges, merged.morphs)

	b.log.Info("sweep done",
		slog.String("gender", string(opt.Gender)),
		slog.Int("points", rep.Points),
		slog.Int("failed", rep.Failed),
		slog.Duration("used", used),
	)
	return rep, used, nil
}

func (b *Bodylab) sweepOne(sw *sweepWorker, g spec.Gender, p sweepPoint) {
	base, err := b.est.Estimate(p.height, p.weight, g)
	if err != nil {
		sw.failed++
		return
	}
	if base.Approximate {
		sw.approx++
	}
	m := spec.Measurements{Height: p.height, Weight: p.weight}
	for _, a := range spec.AdjustableAxes {
		v, _ := base.Get(a)
		r, err := b.res.Range(g, a, v)
		if err != nil {
			sw.failed++
			return
		}
		m.Set(a, r.Clamp(v))
		sw.ranges.Add(string(a)+".position", slider.Position(r.Clamp(v), r))
		sw.ranges.Add(string(a)+".span", r.Span())
	}
	ws, err := b.res.Resolve(g, m, base)
	if err != nil {
		sw.failed++
		return
	}
	sw.baseline.Add("chest", base.Chest)
	sw.baseline.Add("waist", base.Waist)
	sw.baseline.Add("hips", base.Hips)
	sw.baseline.Add("inseam", base.Inseam)
	for _, t := range ws {
		sw.morphs.Add(t.Name, t.Weight)
	}
}

// ExportSweep 以 format（json / yaml）輸出報告並以 zstd 壓縮寫入 w。
func ExportSweep(w io.Writer, rep *stats.SweepReport, format string) error {
	rd, err := stats.RenderByName(format)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return errs.Wrap(err, "create zstd writer")
	}
	if err := rep.WriteWith(enc, rd); err != nil {
		enc.Close()
		return errs.Wrap(err, "render sweep report")
	}
	return enc.Close()
}
