package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/bookseam/internal/config"
	"github.com/ivlev/bookseam/internal/report"
	"github.com/ivlev/bookseam/internal/source"
)

type SplitProject struct {
	Config *config.Config
	Source source.Source
	Sink   source.Sink
}

func NewSplitProject(cfg *config.Config, src source.Source, sink source.Sink) *SplitProject {
	return &SplitProject{
		Config: cfg,
		Source: src,
		Sink:   sink,
	}
}

func (p *SplitProject) Run() error {
	startTime := time.Now()

	spread, err := p.Source.Load()
	if err != nil {
		return fmt.Errorf("ошибка чтения разворота: %w", err)
	}

	fmt.Println("--- [PROJECT: BOOK SEAM] ---")
	fmt.Printf("[*] Источник: %s | Размер: %dx%d\n", p.Source.Name(), spread.Width, spread.Height)
	fmt.Printf("[*] Поля: %dpx | Расширение: %d | Потоки: %d\n", p.Config.Margin, p.Config.DilateIterations, p.Config.Workers)
	fmt.Println("-----------------------------")

	res, procErr := Process(spread, p.Source.Name(), p.Config)
	if res == nil {
		return procErr
	}

	split := res.Split
	p.verbose("[*] Шов найден в %d из %d строк\n", split.Rows, spread.Height)
	p.verbose("[*] Левый край шва: y=%.3fx%+.1f | Правый край: y=%.3fx%+.1f\n",
		split.StartLine.M, split.StartLine.B, split.EndLine.M, split.EndLine.B)
	fmt.Printf("[*] Обрезка: левая страница до x=%d, правая с x=%d\n", split.CropEnd, split.CropStart)

	if err := p.Sink.Save(res.Left.Name, res.Left.Bitmap); err != nil {
		return fmt.Errorf("ошибка сохранения левой страницы: %w", err)
	}
	fmt.Printf("[>] Левая страница: %s (%dx%d)\n", res.Left.Name, res.Left.Bitmap.Width, res.Left.Bitmap.Height)

	if procErr != nil {
		return procErr
	}

	p.verbose("[*] Точек края: %d, после фильтра: %d\n", res.Margin.Edges, res.Margin.Kept)
	fmt.Printf("[*] Угол наклона правой страницы: %.4f рад (%.2f°)\n", res.Angle, Degrees(res.Angle))

	if err := p.Sink.Save(res.Right.Name, res.Right.Bitmap); err != nil {
		return fmt.Errorf("ошибка сохранения правой страницы: %w", err)
	}
	fmt.Printf("[>] Правая страница: %s (%dx%d)\n", res.Right.Name, res.Right.Bitmap.Width, res.Right.Bitmap.Height)

	if p.Config.ReportPath != "" {
		if err := report.Write(p.buildReport(res, spread.Width, spread.Height), p.Config.ReportPath); err != nil {
			return fmt.Errorf("ошибка записи отчета: %w", err)
		}
		fmt.Printf("[*] Отчет: %s\n", p.Config.ReportPath)
	}

	p.verbose("[*] Время: %.2fs\n", time.Since(startTime).Seconds())
	return nil
}

func (p *SplitProject) buildReport(res *Result, width, height int) *report.Report {
	split := res.Split
	return &report.Report{
		Version: "1.0",
		Input:   p.Source.Name(),
		Width:   width,
		Height:  height,
		Seam: report.Seam{
			Rows:      split.Rows,
			StartLine: split.StartLine,
			EndLine:   split.EndLine,
			CropEnd:   split.CropEnd,
			CropStart: split.CropStart,
		},
		Pages: []report.Page{
			{Side: "left", Output: p.outputName(res.Left.Name), Width: res.Left.Bitmap.Width, Height: res.Left.Bitmap.Height},
			{Side: "right", Output: p.outputName(res.Right.Name), Width: res.Right.Bitmap.Width, Height: res.Right.Bitmap.Height},
		},
		Deskew: report.Deskew{
			EdgePoints: res.Margin.Edges,
			Kept:       res.Margin.Kept,
			Margin:     res.Margin.Line,
			Radians:    res.Angle,
			Degrees:    Degrees(res.Angle),
		},
	}
}

// outputName is where the sink puts a page
func (p *SplitProject) outputName(name string) string {
	if fs, ok := p.Sink.(*source.FileSink); ok && fs.Dir != "" {
		return filepath.Join(fs.Dir, filepath.Base(name))
	}
	return name
}

func (p *SplitProject) verbose(format string, args ...interface{}) {
	if p.Config.Verbose {
		fmt.Printf(format, args...)
	}
}
