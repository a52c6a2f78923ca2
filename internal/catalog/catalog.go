package catalog

import (
	"context"
	"math"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/boostbay/boostbay-golang/internal/models"
)

// ErrPricingFunctionMissing is returned when get_packages_with_prices() does
// not exist in the database. Callers fall back to the manual calculation.
var ErrPricingFunctionMissing = errors.New("pricing function is not installed")

// Repository is the persistence boundary for the package catalog.
type Repository interface {
	// PackagesWithPrices resolves effective prices server-side via
	// get_packages_with_prices().
	PackagesWithPrices(ctx context.Context, serviceType string) ([]models.Package, error)

	// ListPackages is the plain fallback query; effective prices are
	// computed client-side.
	ListPackages(ctx context.Context, serviceType string) ([]models.Package, error)

	CountPackages(ctx context.Context) (int, error)
	InsertPackages(ctx context.Context, pkgs []models.Package) error
	DeleteAllPackages(ctx context.Context) error
}

// Postgres error code for a missing function.
const pqUndefinedFunction = "42883"

// SQLRepository is the PostgreSQL implementation of Repository.
type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) PackagesWithPrices(ctx context.Context, serviceType string) ([]models.Package, error) {
	query := `
		SELECT id, name, description, service_type, service_id, units, price,
		       discounted_price, discount_percentage, is_featured, is_active,
		       created_at, updated_at, effective_price
		FROM get_packages_with_prices()
		WHERE ($1 = '' OR service_type = $1)
		ORDER BY service_type, price`

	var pkgs []models.Package
	if err := r.db.SelectContext(ctx, &pkgs, query, serviceType); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUndefinedFunction {
			return nil, ErrPricingFunctionMissing
		}
		return nil, errors.Wrap(err, "select packages with prices")
	}
	return pkgs, nil
}

func (r *SQLRepository) ListPackages(ctx context.Context, serviceType string) ([]models.Package, error) {
	query := `
		SELECT id, name, description, service_type, service_id, units, price,
		       discounted_price, discount_percentage, is_featured, is_active,
		       created_at, updated_at
		FROM packages
		WHERE is_active AND ($1 = '' OR service_type = $1)
		ORDER BY service_type, price`

	var pkgs []models.Package
	if err := r.db.SelectContext(ctx, &pkgs, query, serviceType); err != nil {
		return nil, errors.Wrap(err, "select packages")
	}
	return pkgs, nil
}

func (r *SQLRepository) CountPackages(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT count(*) FROM packages"); err != nil {
		return 0, errors.Wrap(err, "count packages")
	}
	return count, nil
}

func (r *SQLRepository) InsertPackages(ctx context.Context, pkgs []models.Package) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin insert transaction")
	}
	defer tx.Rollback()

	query := `
		INSERT INTO packages (id, name, description, service_type, service_id, units,
		                      price, discounted_price, discount_percentage, is_featured)
		VALUES (:id, :name, :description, :service_type, :service_id, :units,
		        :price, :discounted_price, :discount_percentage, :is_featured)`

	for _, pkg := range pkgs {
		if _, err := tx.NamedExecContext(ctx, query, pkg); err != nil {
			return errors.Wrapf(err, "insert package %s", pkg.ID)
		}
	}

	return errors.Wrap(tx.Commit(), "commit insert transaction")
}

func (r *SQLRepository) DeleteAllPackages(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM packages")
	return errors.Wrap(err, "delete packages")
}

// EffectivePrice resolves what the customer pays for a package: a sane
// discounted price wins, then the percentage fallback
// price x (1 - discount_percentage/100), then the raw price. A
// discounted_price above price is ignored rather than honored.
func EffectivePrice(p models.Package) float64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice >= 0 && *p.DiscountedPrice <= p.Price {
		return *p.DiscountedPrice
	}
	if p.DiscountPercentage > 0 {
		return math.Round(p.Price*(1-p.DiscountPercentage/100)*100) / 100
	}
	return p.Price
}

// Service serves the storefront catalog.
type Service struct {
	repo Repository
	log  *logrus.Entry
}

func NewService(repo Repository, log *logrus.Entry) *Service {
	return &Service{repo: repo, log: log}
}

// ListPackages returns the purchasable packages for one service type ("" for
// all). It prefers the server-side pricing function, falls back to the
// manual calculation when the function is absent, and falls back to the
// built-in default set when the catalog is unreachable or empty.
func (s *Service) ListPackages(ctx context.Context, serviceType string) ([]models.Package, error) {
	pkgs, err := s.repo.PackagesWithPrices(ctx, serviceType)
	if errors.Is(err, ErrPricingFunctionMissing) {
		s.log.Warn("get_packages_with_prices() is missing; using manual price calculation")
		pkgs, err = s.repo.ListPackages(ctx, serviceType)
		for i := range pkgs {
			pkgs[i].EffectivePrice = EffectivePrice(pkgs[i])
		}
	}
	if err != nil {
		s.log.WithError(err).Error("failed to load catalog; serving default packages")
		return defaultsFor(serviceType), nil
	}
	if len(pkgs) == 0 {
		return defaultsFor(serviceType), nil
	}
	return pkgs, nil
}

func defaultsFor(serviceType string) []models.Package {
	defaults := DefaultPackages()
	if serviceType == "" {
		return defaults
	}
	filtered := make([]models.Package, 0, len(defaults))
	for _, pkg := range defaults {
		if pkg.ServiceType == serviceType {
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}
