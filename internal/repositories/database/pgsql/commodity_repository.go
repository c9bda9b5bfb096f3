package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook_app/internal/apperrors"
	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commodityColumns = `commodity_id, name, code, commodity_type, backend, auto_update, website, price_selector, website_currency_id, created_at, last_updated_at`

// PgxCommodityRepository persists commodities in postgres.
type PgxCommodityRepository struct {
	BaseRepository
}

// newPgxCommodityRepository creates a new repository for commodity data.
func newPgxCommodityRepository(pool *pgxpool.Pool) portsrepo.CommodityRepositoryFacade {
	return &PgxCommodityRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CommodityRepositoryFacade = (*PgxCommodityRepository)(nil)

func scanCommodity(row pgx.Row) (domain.Commodity, error) {
	var c domain.Commodity
	err := row.Scan(
		&c.CommodityID,
		&c.Name,
		&c.Code,
		&c.CommodityType,
		&c.Backend,
		&c.AutoUpdate,
		&c.Website,
		&c.PriceSelector,
		&c.WebsiteCurrencyID,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	return c, err
}

// SaveCommodity inserts a new commodity and fills in its generated ID.
func (r *PgxCommodityRepository) SaveCommodity(ctx context.Context, commodity *domain.Commodity) error {
	query := `
		INSERT INTO commodities (name, code, commodity_type, backend, auto_update, website, price_selector, website_currency_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING commodity_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		commodity.Name,
		commodity.Code,
		commodity.CommodityType,
		commodity.Backend,
		commodity.AutoUpdate,
		commodity.Website,
		commodity.PriceSelector,
		commodity.WebsiteCurrencyID,
		commodity.CreatedAt,
		commodity.LastUpdatedAt,
	).Scan(&commodity.CommodityID)

	if err != nil {
		return fmt.Errorf("failed to save commodity %s: %w", commodity.Code, mapPgError(err))
	}
	return nil
}

// GetOrCreateCommodity finds a commodity by (name, code) or creates it with
// the given type. Backed by the unique (name, code) constraint.
func (r *PgxCommodityRepository) GetOrCreateCommodity(ctx context.Context, name, code string, commodityType domain.CommodityType) (*domain.Commodity, error) {
	query := `
		SELECT ` + commodityColumns + `
		FROM commodities
		WHERE name = $1 AND code = $2;
	`
	c, err := scanCommodity(r.Pool.QueryRow(ctx, query, name, code))
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to find commodity %s: %w", code, err)
	}

	insert := `
		INSERT INTO commodities (name, code, commodity_type, auto_update, created_at, last_updated_at)
		VALUES ($1, $2, $3, false, now(), now())
		ON CONFLICT (code) DO UPDATE SET last_updated_at = now()
		RETURNING ` + commodityColumns + `;
	`
	c, err = scanCommodity(r.Pool.QueryRow(ctx, insert, name, code, commodityType))
	if err != nil {
		return nil, fmt.Errorf("failed to create commodity %s: %w", code, mapPgError(err))
	}
	return &c, nil
}

// FindCommodityByID retrieves a commodity by its ID.
func (r *PgxCommodityRepository) FindCommodityByID(ctx context.Context, commodityID int64) (*domain.Commodity, error) {
	query := `SELECT ` + commodityColumns + ` FROM commodities WHERE commodity_id = $1;`
	c, err := scanCommodity(r.Pool.QueryRow(ctx, query, commodityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find commodity %d: %w", commodityID, err)
	}
	return &c, nil
}

// FindCommodityByCode retrieves a commodity by its unique code.
func (r *PgxCommodityRepository) FindCommodityByCode(ctx context.Context, code string) (*domain.Commodity, error) {
	query := `SELECT ` + commodityColumns + ` FROM commodities WHERE code = $1;`
	c, err := scanCommodity(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find commodity by code %s: %w", code, err)
	}
	return &c, nil
}

// ListCommodities retrieves all commodities ordered like the admin listing.
func (r *PgxCommodityRepository) ListCommodities(ctx context.Context) ([]domain.Commodity, error) {
	query := `SELECT ` + commodityColumns + ` FROM commodities ORDER BY name, code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query commodities: %w", err)
	}
	defer rows.Close()

	commodities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Commodity, error) {
		return scanCommodity(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan commodities: %w", err)
	}
	return commodities, nil
}

// ListAutoUpdating returns commodities flagged for auto update by the given
// backend. An empty types slice skips type filtering ("__all__").
func (r *PgxCommodityRepository) ListAutoUpdating(ctx context.Context, backend domain.BackendKind, types []domain.CommodityType) ([]domain.Commodity, error) {
	query := `
		SELECT ` + commodityColumns + `
		FROM commodities
		WHERE auto_update = true AND backend = $1
	`
	args := []any{backend}
	if len(types) > 0 {
		query += ` AND commodity_type = ANY($2)`
		typeStrings := make([]string, len(types))
		for i, t := range types {
			typeStrings[i] = string(t)
		}
		args = append(args, typeStrings)
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query auto-updating commodities: %w", err)
	}
	defer rows.Close()

	commodities, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Commodity, error) {
		return scanCommodity(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan auto-updating commodities: %w", err)
	}
	return commodities, nil
}
