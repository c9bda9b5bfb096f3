package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const priceColumns = `price_id, commodity_id, unit_id, price, date, backend, created_at, last_updated_at`

// PgxPriceRepository persists prices in postgres.
type PgxPriceRepository struct {
	BaseRepository
}

// newPgxPriceRepository creates a new repository for price data.
func newPgxPriceRepository(pool *pgxpool.Pool) portsrepo.PriceRepositoryFacade {
	return &PgxPriceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PriceRepositoryFacade = (*PgxPriceRepository)(nil)

func scanPrice(row pgx.Row) (domain.Price, error) {
	var p domain.Price
	err := row.Scan(
		&p.PriceID,
		&p.CommodityID,
		&p.UnitID,
		&p.Price,
		&p.Date,
		&p.Backend,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	return p, err
}

// SavePrice inserts a single price row and fills in its generated ID.
// Violating the one-row-per-(commodity, unit, date, backend) constraint
// surfaces as apperrors.ErrDuplicate.
func (r *PgxPriceRepository) SavePrice(ctx context.Context, price *domain.Price) error {
	query := `
		INSERT INTO prices (commodity_id, unit_id, price, date, backend, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING price_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		price.CommodityID,
		price.UnitID,
		price.Price,
		price.Date,
		price.Backend,
		price.CreatedAt,
		price.LastUpdatedAt,
	).Scan(&price.PriceID)

	if err != nil {
		return fmt.Errorf("failed to save price for commodity %d: %w", price.CommodityID, mapPgError(err))
	}
	return nil
}

// BulkInsertPrices inserts the rows in one batch within a single database
// transaction, so a constraint violation rolls back the whole backend run.
func (r *PgxPriceRepository) BulkInsertPrices(ctx context.Context, prices []domain.Price) (int64, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	rows := make([][]any, len(prices))
	for i, p := range prices {
		rows[i] = []any{p.CommodityID, p.UnitID, p.Price, p.Date, p.Backend, p.CreatedAt, p.LastUpdatedAt}
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"prices"},
		[]string{"commodity_id", "unit_id", "price", "date", "backend", "created_at", "last_updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert prices: %w", mapPgError(err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return copied, nil
}

// ListPricesByCommodity returns all prices quoting the commodity, newest first.
func (r *PgxPriceRepository) ListPricesByCommodity(ctx context.Context, commodityID int64) ([]domain.Price, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM prices
		WHERE commodity_id = $1
		ORDER BY date DESC, price_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, commodityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices: %w", err)
	}
	defer rows.Close()

	prices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Price, error) {
		return scanPrice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan prices: %w", err)
	}
	return prices, nil
}

// LatestPrices returns the single most recent price per (commodity, unit)
// pair. Ties on date are broken deterministically by highest price ID.
func (r *PgxPriceRepository) LatestPrices(ctx context.Context) ([]domain.Price, error) {
	query := `
		SELECT DISTINCT ON (commodity_id, unit_id) ` + priceColumns + `
		FROM prices
		ORDER BY commodity_id, unit_id, date DESC, price_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest prices: %w", err)
	}
	defer rows.Close()

	prices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Price, error) {
		return scanPrice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan latest prices: %w", err)
	}
	return prices, nil
}

// LatestDates returns per commodity the most recent price date recorded by
// the named backend, optionally restricted to one unit.
func (r *PgxPriceRepository) LatestDates(ctx context.Context, backend string, commodityIDs []int64, unitID *int64) (map[int64]time.Time, error) {
	query := `
		SELECT commodity_id, MAX(date)
		FROM prices
		WHERE backend = $1 AND commodity_id = ANY($2)
	`
	args := []any{backend, commodityIDs}
	if unitID != nil {
		query += ` AND unit_id = $3`
		args = append(args, *unitID)
	}
	query += ` GROUP BY commodity_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest price dates: %w", err)
	}
	defer rows.Close()

	latest := make(map[int64]time.Time)
	for rows.Next() {
		var commodityID int64
		var date time.Time
		if err := rows.Scan(&commodityID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan latest price date: %w", err)
		}
		latest[commodityID] = date
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read latest price dates: %w", err)
	}
	return latest, nil
}
