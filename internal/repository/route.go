package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"polaris/components/internal/domain"
)

// DB is the subset of *pgxpool.Pool used by the repository.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type RouteRepository interface {
	ListRoutes(ctx context.Context) ([]domain.RouteDefinition, error)
	SaveRoute(ctx context.Context, route domain.RouteDefinition) error
}

type routeRepository struct {
	db DB
}

func NewRouteRepository(db DB) RouteRepository {
	return &routeRepository{
		db: db,
	}
}

func (r *routeRepository) ListRoutes(ctx context.Context) ([]domain.RouteDefinition, error) {
	rows, err := r.db.Query(ctx, `SELECT name, path FROM routes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []domain.RouteDefinition
	for rows.Next() {
		var route domain.RouteDefinition
		if err := rows.Scan(&route.Name, &route.Path); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read routes: %w", err)
	}

	return routes, nil
}

func (r *routeRepository) SaveRoute(ctx context.Context, route domain.RouteDefinition) error {
	query := `
	INSERT INTO routes (name, path) 
	VALUES ($1, $2) 
	ON CONFLICT (name) 
	DO UPDATE SET path = $2`
	_, err := r.db.Exec(ctx, query, route.Name, route.Path)
	if err != nil {
		return fmt.Errorf("failed to save route %s: %w", route.Name, err)
	}

	return nil
}
