package packagerepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const packageColumns = `id, account_id, package_name, credit_remaining, hours_remaining, purchased_at, expires_at, status`

func scanPackage(row pgx.Row) (*domain.UserPackage, error) {
	var pkg domain.UserPackage
	err := row.Scan(
		&pkg.ID, &pkg.AccountID, &pkg.PackageName,
		&pkg.CreditRemaining, &pkg.HoursRemaining,
		&pkg.PurchasedAt, &pkg.ExpiresAt, &pkg.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't scan user package row", zap.Error(err))
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) Create(ctx context.Context, pkg *domain.UserPackage) (*domain.UserPackage, error) {
	query := `
        INSERT INTO user_packages (account_id, package_name, credit_remaining, hours_remaining, purchased_at, expires_at, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		pkg.AccountID, pkg.PackageName, pkg.CreditRemaining, pkg.HoursRemaining,
		pkg.PurchasedAt, pkg.ExpiresAt, pkg.Status,
	).Scan(&pkg.ID)
	if err != nil {
		zap.L().Error("can't save user package", zap.Error(err))
		return nil, err
	}
	return pkg, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.UserPackage, error) {
	query := `
        SELECT ` + packageColumns + `
        FROM user_packages
        WHERE id = $1
    `
	return scanPackage(r.db.QueryRow(ctx, query, id))
}

// GetForUpdate locks the package row for the draw-down read-modify-write.
func (r *Repository) GetForUpdate(ctx context.Context, id int) (*domain.UserPackage, error) {
	query := `
        SELECT ` + packageColumns + `
        FROM user_packages
        WHERE id = $1
        FOR UPDATE
    `
	return scanPackage(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) Update(ctx context.Context, pkg *domain.UserPackage) error {
	query := `
        UPDATE user_packages
        SET credit_remaining = $1, hours_remaining = $2, status = $3
        WHERE id = $4
    `
	if _, err := r.db.Exec(ctx, query, pkg.CreditRemaining, pkg.HoursRemaining, pkg.Status, pkg.ID); err != nil {
		zap.L().Error("can't update user package", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AppendUsage(ctx context.Context, usage *domain.PackageUsage) error {
	query := `
        INSERT INTO package_usage (user_package_id, kind, amount, remaining, reference, used_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		usage.UserPackageID, usage.Kind, usage.Amount, usage.Remaining,
		usage.Reference, usage.UsedAt,
	).Scan(&usage.ID)
	if err != nil {
		zap.L().Error("can't append package usage", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByAccount(ctx context.Context, accountID int) ([]domain.UserPackage, error) {
	query := `
        SELECT ` + packageColumns + `
        FROM user_packages
        WHERE account_id = $1
        ORDER BY purchased_at DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("can't get user packages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var pkgs []domain.UserPackage
	for rows.Next() {
		var pkg domain.UserPackage
		err := rows.Scan(
			&pkg.ID, &pkg.AccountID, &pkg.PackageName,
			&pkg.CreditRemaining, &pkg.HoursRemaining,
			&pkg.PurchasedAt, &pkg.ExpiresAt, &pkg.Status,
		)
		if err != nil {
			zap.L().Error("can't scan user package row", zap.Error(err))
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func (r *Repository) ListUsage(ctx context.Context, packageID int) ([]domain.PackageUsage, error) {
	query := `
        SELECT id, user_package_id, kind, amount, remaining, reference, used_at
        FROM package_usage
        WHERE user_package_id = $1
        ORDER BY used_at
    `
	rows, err := r.db.Query(ctx, query, packageID)
	if err != nil {
		zap.L().Error("can't get package usage", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var usages []domain.PackageUsage
	for rows.Next() {
		var u domain.PackageUsage
		err := rows.Scan(&u.ID, &u.UserPackageID, &u.Kind, &u.Amount, &u.Remaining, &u.Reference, &u.UsedAt)
		if err != nil {
			zap.L().Error("can't scan package usage row", zap.Error(err))
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, nil
}

// FindExpiredActive returns active packages whose expiry has passed, for
// the background sweep.
func (r *Repository) FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]domain.UserPackage, error) {
	query := `
        SELECT ` + packageColumns + `
        FROM user_packages
        WHERE status = $1 AND expires_at <= $2
        ORDER BY expires_at
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, domain.PackageActive, now, limit)
	if err != nil {
		zap.L().Error("can't get expired packages", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var pkgs []domain.UserPackage
	for rows.Next() {
		var pkg domain.UserPackage
		err := rows.Scan(
			&pkg.ID, &pkg.AccountID, &pkg.PackageName,
			&pkg.CreditRemaining, &pkg.HoursRemaining,
			&pkg.PurchasedAt, &pkg.ExpiresAt, &pkg.Status,
		)
		if err != nil {
			zap.L().Error("can't scan user package row", zap.Error(err))
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}
