// Package warehouse loads the curated star schema into Postgres.
package warehouse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"retail-etl/core/table"
	"retail-etl/internal/config"
	"retail-etl/internal/errors"
	"retail-etl/internal/logging"
)

// Tables maps each curated CSV to its warehouse table, in load order
var Tables = []struct {
	File  string
	Table string
}{
	{"dim_cliente.csv", "dim_cliente"},
	{"dim_producto.csv", "dim_producto"},
	{"dim_tiempo.csv", "dim_tiempo"},
	{"hecho_ventas.csv", "hecho_ventas"},
}

// Loader wraps a warehouse connection pool
type Loader struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against the configured warehouse
func Connect(ctx context.Context, cfg config.WarehouseConfig) (*Loader, error) {
	pool, err := pgxpool.New(ctx, cfg.URL())
	if err != nil {
		return nil, errors.Database("connecting to warehouse", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Database("pinging warehouse", err)
	}
	return &Loader{pool: pool}, nil
}

// Close releases the pool
func (l *Loader) Close() {
	l.pool.Close()
}

// ExecSchema executes the externally supplied DDL script verbatim in a
// single transaction.
func (l *Loader) ExecSchema(ctx context.Context, path string) error {
	ddl, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			resolved, absErr := filepath.Abs(path)
			if absErr != nil {
				resolved = path
			}
			return errors.NotFound("schema script", resolved)
		}
		return errors.IO("reading schema script", err)
	}

	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return errors.Database("beginning schema transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(ddl)); err != nil {
		return errors.Database("executing schema script", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Database("committing schema", err)
	}
	return nil
}

// AppendTable appends every row of the table. Values travel as text and are
// cast by the server; nulls stay null.
func (l *Loader) AppendTable(ctx context.Context, name string, t *table.Table) (int, error) {
	cols := t.Columns()
	colIdents := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		colIdents[i] = pgx.Identifier{c}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{name}.Sanitize(),
		strings.Join(colIdents, ", "),
		strings.Join(placeholders, ", "))

	batch := &pgx.Batch{}
	t.Each(func(r int) {
		args := make([]interface{}, len(cols))
		for i, c := range cols {
			v := t.Value(r, c)
			if v.IsNull() {
				args[i] = nil
				continue
			}
			args[i] = v.Render()
		}
		batch.Queue(stmt, args...)
	})

	br := l.pool.SendBatch(ctx, batch)
	defer br.Close()

	count := 0
	for i := 0; i < t.NumRows(); i++ {
		if _, err := br.Exec(); err != nil {
			return count, errors.Database(fmt.Sprintf("appending into %s", name), err)
		}
		count++
	}
	return count, nil
}

// Run executes the DDL and appends the four curated tables. Appends are
// independent per table; a mid-load failure leaves earlier tables loaded.
func Run(ctx context.Context, cfg config.WarehouseConfig, curatedDir string, opts table.Options) error {
	loader, err := Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer loader.Close()

	if err := loader.ExecSchema(ctx, cfg.SchemaFile); err != nil {
		return err
	}

	for _, spec := range Tables {
		t, err := table.ReadCSV(filepath.Join(curatedDir, spec.File), opts)
		if err != nil {
			return err
		}
		n, err := loader.AppendTable(ctx, spec.Table, t)
		if err != nil {
			return err
		}
		fmt.Printf("Cargado: %s (%d filas)\n", spec.Table, n)
		logging.Info("table loaded", zap.String("table", spec.Table), zap.Int("rows", n))
	}

	fmt.Println("Carga al DW completada")
	return nil
}
