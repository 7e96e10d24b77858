package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pedigraph/internal/domain"
)

// Loader bulk-loads the finished dimensional model into Postgres. Each run
// rebuilds the tables in full inside one transaction: truncate, then copy
// dimensions before facts so the foreign keys hold.
type Loader struct {
	conn *Connection
	log  *zap.Logger
}

// NewLoader creates a loader over conn.
func NewLoader(conn *Connection, log *zap.Logger) *Loader {
	return &Loader{conn: conn, log: log}
}

// LoadModel replaces all dimension and fact rows.
func (l *Loader) LoadModel(ctx context.Context, tables []domain.DimensionTable, cats []domain.Cat) error {
	return l.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			"TRUNCATE cats, breeds, colors, countries, catteries, source_dbs"); err != nil {
			return fmt.Errorf("truncate model tables: %w", err)
		}

		for _, table := range tables {
			if err := l.copyDimension(ctx, tx, table); err != nil {
				return err
			}
		}
		return l.copyCats(ctx, tx, cats)
	})
}

func (l *Loader) copyDimension(ctx context.Context, tx pgx.Tx, table domain.DimensionTable) error {
	rows := make([][]any, len(table.Rows))
	for i, row := range table.Rows {
		values := make([]any, 0, 1+len(row.Key)+len(row.Attributes))
		values = append(values, row.ID)
		for _, k := range row.Key {
			values = append(values, k)
		}
		for _, a := range row.Attributes {
			values = append(values, a)
		}
		rows[i] = values
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{table.Spec.Name},
		table.Spec.Columns(),
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy %s: %w", table.Spec.Name, err)
	}

	l.log.Info("dimension loaded",
		zap.String("table", table.Spec.Name),
		zap.Int64("rows", copied))
	return nil
}

func (l *Loader) copyCats(ctx context.Context, tx pgx.Tx, cats []domain.Cat) error {
	rows := make([][]any, len(cats))
	for i, cat := range cats {
		rows[i] = []any{
			cat.ID,
			cat.Name,
			cat.DateOfBirth,
			cat.Gender,
			cat.RegistrationNumber,
			cat.TitleBefore,
			cat.TitleAfter,
			cat.Chip,
			cat.Breed.StorageID(),
			cat.Color.StorageID(),
			cat.CountryOrigin.StorageID(),
			cat.CountryCurrent.StorageID(),
			cat.Cattery.StorageID(),
			cat.SourceDB.StorageID(),
			cat.Father.StorageID(),
			cat.Mother.StorageID(),
		}
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"cats"},
		domain.CatColumns,
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy cats: %w", err)
	}

	l.log.Info("facts loaded", zap.Int64("rows", copied))
	return nil
}
