package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"

	"github.com/zintix-labs/bodylab"
	"github.com/zintix-labs/bodylab/errs"
	"github.com/zintix-labs/bodylab/sdk/perf"
	"github.com/zintix-labs/bodylab/spec"
	"github.com/zintix-labs/bodylab/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	green = "\033[1;32m"
	reset = "\033[0m"
)

var commands = []string{"estimate", "keys", "range", "slider", "summary", "sweep"}

type config struct {
	cmd       string
	gender    string
	height    float64
	weight    float64
	chest     float64
	waist     float64
	hips      float64
	axis      string
	baseline  float64
	value     float64
	format    string
	worker    int
	heights   stats.Grid
	weights   stats.Grid
	out       string
	pprofmode string
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: run <command> [flags]\ncommands: %v\n", commands)
}

// bindVar 解析子命令與其 flag。未給定的量測值以 NaN 表示，執行時以 baseline 補上。
func bindVar(args []string) (*config, error) {
	if len(args) == 0 {
		return nil, errs.NewWarn("missing command")
	}
	cfg := &config{cmd: args[0]}
	fs := flag.NewFlagSet(cfg.cmd, flag.ContinueOnError)

	fs.StringVar(&cfg.gender, "gender", "female", "male | female")
	fs.StringVar(&cfg.pprofmode, "p", "", fmt.Sprintf("pprof: '' or one of %v", perf.Modes()))

	switch cfg.cmd {
	case "estimate":
		bindBody(fs, cfg)
	case "keys":
		bindBody(fs, cfg)
		fs.Float64Var(&cfg.chest, "chest", math.NaN(), "chest (cm), default baseline")
		fs.Float64Var(&cfg.waist, "waist", math.NaN(), "waist (cm), default baseline")
		fs.Float64Var(&cfg.hips, "hips", math.NaN(), "hips (cm), default baseline")
	case "range", "slider":
		bindBody(fs, cfg)
		fs.StringVar(&cfg.axis, "axis", "chest", "chest | waist | hips")
		fs.Float64Var(&cfg.baseline, "baseline", math.NaN(), "baseline (cm), default estimated from height/weight")
		if cfg.cmd == "slider" {
			fs.Float64Var(&cfg.value, "value", math.NaN(), "slider value (cm), default baseline")
		}
	case "summary":
		fs.StringVar(&cfg.format, "format", "table", "table | json | yaml")
	case "sweep":
		fs.IntVar(&cfg.worker, "worker", runtime.NumCPU(), "number of workers")
		fs.Float64Var(&cfg.heights.From, "h-from", 140, "height grid start")
		fs.Float64Var(&cfg.heights.To, "h-to", 200, "height grid end")
		fs.Float64Var(&cfg.heights.Step, "h-step", 1, "height grid step")
		fs.Float64Var(&cfg.weights.From, "w-from", 40, "weight grid start")
		fs.Float64Var(&cfg.weights.To, "w-to", 120, "weight grid end")
		fs.Float64Var(&cfg.weights.Step, "w-step", 1, "weight grid step")
		fs.StringVar(&cfg.out, "out", "", "export report to file (zstd compressed)")
		fs.StringVar(&cfg.format, "format", "yaml", "export format: json | yaml | table")
	default:
		return nil, errs.Warnf("unknown command: %s", cfg.cmd)
	}
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}

func bindBody(fs *flag.FlagSet, cfg *config) {
	fs.Float64Var(&cfg.height, "height", 170, "height (cm)")
	fs.Float64Var(&cfg.weight, "weight", 60, "weight (kg)")
}

// 這裡分支要執行的子命令
func execute(cfg *config) error {
	lab, err := bodylab.NewDefault()
	if err != nil {
		return err
	}
	g := spec.ParseGender(cfg.gender)
	p := message.NewPrinter(language.English)

	switch cfg.cmd {
	case "estimate":
		p.Printf("%s[GENDER:%s] [HEIGHT:%.1f] [WEIGHT:%.1f]%s\n", green, g, cfg.height, cfg.weight, reset)
		base, err := lab.Estimate(cfg.height, cfg.weight, g)
		if err != nil {
			return err
		}
		p.Printf("chest  %8.2f\nwaist  %8.2f\nhips   %8.2f\ninseam %8.2f\n", base.Chest, base.Waist, base.Hips, base.Inseam)
		if base.Approximate {
			p.Printf("(approximate: linear fallback)\n")
		}
	case "keys":
		base, err := lab.Estimate(cfg.height, cfg.weight, g)
		if err != nil {
			return err
		}
		chest, waist, hips := orBase(cfg.chest, base.Chest), orBase(cfg.waist, base.Waist), orBase(cfg.hips, base.Hips)
		p.Printf("%s[GENDER:%s] [HEIGHT:%.1f] [WEIGHT:%.1f] [CHEST:%.1f] [WAIST:%.1f] [HIPS:%.1f]%s\n",
			green, g, cfg.height, cfg.weight, chest, waist, hips, reset)
		keys, err := lab.CalculateShapeKeys(cfg.height, cfg.weight, chest, waist, hips, g)
		if err != nil {
			return err
		}
		for _, a := range spec.Axes {
			p.Printf("%-8s %8.3f\n", a.ShapeKey(), keys.Get(a))
		}
	case "range", "slider":
		axis, err := spec.ParseAxis(cfg.axis)
		if err != nil {
			return err
		}
		baseline := cfg.baseline
		if math.IsNaN(baseline) {
			base, err := lab.Estimate(cfg.height, cfg.weight, g)
			if err != nil {
				return err
			}
			v, ok := base.Get(axis)
			if !ok {
				return errs.With(errs.ErrUnknownAxis, string(axis))
			}
			baseline = v
		}
		p.Printf("%s[GENDER:%s] [AXIS:%s] [BASELINE:%.1f]%s\n", green, g, axis, baseline, reset)
		if cfg.cmd == "range" {
			r, err := lab.RangeFor(g, axis, baseline)
			if err != nil {
				return err
			}
			p.Printf("range  [%.2f, %.2f]  span %.2f\n", r.Min, r.Max, r.Span())
			return nil
		}
		s, err := lab.Slider(g, axis, baseline, orBase(cfg.value, baseline))
		if err != nil {
			return err
		}
		return (&stats.JsonRender{}).Write(os.Stdout, s)
	case "summary":
		if err := lab.Load(g); err != nil {
			return err
		}
		sum, err := lab.Summary(g)
		if err != nil {
			return err
		}
		rd, err := stats.RenderByName(cfg.format)
		if err != nil {
			return err
		}
		return sum.WriteWith(os.Stdout, rd)
	case "sweep":
		return sweep(lab, g, cfg, p)
	}
	return nil
}

func sweep(lab *bodylab.Bodylab, g spec.Gender, cfg *config, p *message.Printer) error {
	if cfg.worker < 1 {
		return errs.NewWarn("value err : workers must > 0")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := len(cfg.heights.Points()) * len(cfg.weights.Points())
	p.Printf("%s[WORKERS:%d] [GENDER:%s] [POINTS:%d]%s\n", green, cfg.worker, g, n, reset)
	rep, used, err := lab.Sweep(ctx, bodylab.SweepOptions{
		Gender:   g,
		Heights:  cfg.heights,
		Weights:  cfg.weights,
		Workers:  cfg.worker,
		Progress: os.Stderr,
	})
	if err != nil {
		return err
	}
	rep.StdOut(os.Stdout, used)

	if cfg.out == "" {
		return nil
	}
	f, err := os.Create(cfg.out)
	if err != nil {
		return errs.Wrap(err, "create export file")
	}
	defer f.Close()
	if err := bodylab.ExportSweep(f, rep, cfg.format); err != nil {
		return err
	}
	p.Printf("exported : %s\n", cfg.out)
	return nil
}

func orBase(v, base float64) float64 {
	if math.IsNaN(v) {
		return base
	}
	return v
}
