package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pedigraph/internal/dimension"
	"pedigraph/internal/domain"
	"pedigraph/internal/export"
	"pedigraph/internal/ingestion"
)

// ModelStore receives the finished dimensional model. The relational
// loader implements it; a nil store skips the load.
type ModelStore interface {
	LoadModel(ctx context.Context, tables []domain.DimensionTable, cats []domain.Cat) error
}

// Result is what one pipeline run produced.
type Result struct {
	Tables []domain.DimensionTable
	Cats   []domain.Cat
	Files  []string
}

// Pipeline runs the batch ETL: ingest raw exports, rebuild all dimension
// tables, link the facts, export CSVs, and load the relational store. Each
// stage either completes for the whole dataset or fails the run; there is
// no partial output.
type Pipeline struct {
	ingest   *ingestion.Service
	exporter *export.Service
	store    ModelStore
	log      *zap.Logger
}

// New assembles a pipeline.
func New(ingest *ingestion.Service, exporter *export.Service, store ModelStore, log *zap.Logger) *Pipeline {
	return &Pipeline{ingest: ingest, exporter: exporter, store: store, log: log}
}

// Run executes the full ETL over every supported file in dataDir.
func (p *Pipeline) Run(ctx context.Context, dataDir string) (Result, error) {
	records, err := p.ingestDir(dataDir)
	if err != nil {
		return Result{}, err
	}
	p.log.Info("source records ingested", zap.Int("records", len(records)))

	specs := []domain.DimensionSpec{
		domain.BreedSpec,
		domain.ColorSpec,
		domain.CountrySpec,
		domain.CatterySpec,
		domain.SourceDBSpec,
	}

	tables := make([]domain.DimensionTable, 0, len(specs))
	mappings := make(map[string]domain.Mapping, len(specs))
	for _, spec := range specs {
		table, mapping := dimension.Build(spec, records)
		tables = append(tables, table)
		mappings[spec.Name] = mapping
		p.log.Info("dimension built",
			zap.String("table", spec.Name),
			zap.Int("rows", len(table.Rows)))
	}

	cats, err := dimension.Link(records, dimension.Mappings{
		Breed:    mappings[domain.BreedSpec.Name],
		Color:    mappings[domain.ColorSpec.Name],
		Country:  mappings[domain.CountrySpec.Name],
		Cattery:  mappings[domain.CatterySpec.Name],
		SourceDB: mappings[domain.SourceDBSpec.Name],
	})
	if err != nil {
		return Result{}, fmt.Errorf("link facts: %w", err)
	}
	p.log.Info("facts linked", zap.Int("cats", len(cats)))

	files := make([]string, 0, len(tables)+1)
	for _, table := range tables {
		path, err := p.exporter.WriteDimension(table)
		if err != nil {
			return Result{}, fmt.Errorf("export %s: %w", table.Spec.Name, err)
		}
		files = append(files, path)
	}
	catsPath, err := p.exporter.WriteCats(cats)
	if err != nil {
		return Result{}, fmt.Errorf("export cats: %w", err)
	}
	files = append(files, catsPath)
	p.log.Info("model exported", zap.Strings("files", files))

	if p.store != nil {
		if err := p.store.LoadModel(ctx, tables, cats); err != nil {
			return Result{}, fmt.Errorf("load relational store: %w", err)
		}
	}

	return Result{Tables: tables, Cats: cats, Files: files}, nil
}

// ingestDir reads every CSV and XLSX file under dataDir, in name order so
// runs are reproducible, and concatenates their records.
func (p *Pipeline) ingestDir(dataDir string) ([]domain.Record, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			sources = append(sources, filepath.Join(dataDir, entry.Name()))
		}
	}
	sort.Strings(sources)

	if len(sources) == 0 {
		return nil, fmt.Errorf("no source files found in %s", dataDir)
	}

	var records []domain.Record
	for _, path := range sources {
		fileRecords, err := p.ingest.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", filepath.Base(path), err)
		}
		records = append(records, fileRecords...)
	}
	return records, nil
}
