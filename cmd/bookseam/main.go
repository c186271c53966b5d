package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ivlev/bookseam/internal/config"
	"github.com/ivlev/bookseam/internal/engine"
	"github.com/ivlev/bookseam/internal/source"
	"github.com/ivlev/bookseam/internal/system"
)

func main() {
	defaults := config.Default()

	configPtr := flag.String("config", "", "YAML-файл настроек (флаги имеют приоритет)")
	inputPtr := flag.String("input", "", "Путь к скану разворота (по умолчанию: самый свежий файл в input/)")
	outputPtr := flag.String("output-dir", "", "Папка для страниц (по умолчанию: рядом с исходным файлом)")
	reportPtr := flag.String("report", "", "Путь к YAML-отчету о геометрии (пусто - без отчета)")
	marginPtr := flag.Int("margin", defaults.Margin, "Ширина очищаемой полосы по краям правой страницы (px)")
	dilatePtr := flag.Int("dilate", defaults.DilateIterations, "Число проходов расширения перед поиском поля")
	spreadPtr := flag.Float64("outlier-spread", defaults.OutlierSpread, "Полуширина окна фильтра выбросов (в стандартных отклонениях)")
	slopePtr := flag.Float64("min-slope", defaults.MinMarginSlope, "Минимальный модуль наклона линии поля")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Потоки")
	verbosePtr := flag.Bool("verbose", false, "Подробный вывод")

	flag.Parse()

	cfg := defaults
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
		cfg = loaded
	} else {
		cfg.Workers = *workersPtr
	}

	// Явно заданные флаги перекрывают значения из файла
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "output-dir":
			cfg.OutputDir = *outputPtr
		case "report":
			cfg.ReportPath = *reportPtr
		case "margin":
			cfg.Margin = *marginPtr
		case "dilate":
			cfg.DilateIterations = *dilatePtr
		case "outlier-spread":
			cfg.OutlierSpread = *spreadPtr
		case "min-slope":
			cfg.MinMarginSlope = *slopePtr
		case "workers":
			cfg.Workers = *workersPtr
		case "verbose":
			cfg.Verbose = *verbosePtr
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	if cfg.InputPath == "" {
		latest, err := system.FindLatestScan("input")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите скан в input/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	src, err := source.NewFileSource(cfg.InputPath)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			log.Fatalf("[-] Ошибка создания папки %s: %v", cfg.OutputDir, err)
		}
	}
	sink := &source.FileSink{Dir: cfg.OutputDir}

	project := engine.NewSplitProject(cfg, src, sink)
	if err := project.Run(); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Println("[+++] Успех! Страницы сохранены")
}
