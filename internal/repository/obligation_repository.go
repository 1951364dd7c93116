package repository

import (
	"context"

	"github.com/rahul-9386/emi-management-system/internal/domain"

	"github.com/jmoiron/sqlx"
)

type obligationRepository struct {
	db *sqlx.DB
}

func NewObligationRepository(db *sqlx.DB) ObligationRepository {
	return &obligationRepository{db: db}
}

func (r *obligationRepository) Create(ctx context.Context, snapshot *domain.ObligationSnapshot) error {
	query := `
		INSERT INTO obligation_snapshots (id, loan_account_no, pending_emi_amount, penalty_charges, total_amount, created_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := ext(ctx, r.db).ExecContext(ctx, query,
		snapshot.ID,
		snapshot.LoanAccountNo,
		snapshot.PendingEmiAmount,
		snapshot.PenaltyCharges,
		snapshot.TotalAmount,
		snapshot.CreatedDate,
	)

	return err
}

func (r *obligationRepository) GetLatestByAccount(ctx context.Context, loanAccountNo string) (*domain.ObligationSnapshot, error) {
	query := `
		SELECT id, loan_account_no, pending_emi_amount, penalty_charges, total_amount, created_date
		FROM obligation_snapshots
		WHERE loan_account_no = $1
		ORDER BY created_date DESC
		LIMIT 1
	`

	var snapshot domain.ObligationSnapshot
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &snapshot, query, loanAccountNo); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (r *obligationRepository) ExistsByAccount(ctx context.Context, loanAccountNo string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM obligation_snapshots WHERE loan_account_no = $1
		)
	`

	var exists bool
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &exists, query, loanAccountNo); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *obligationRepository) ListAccounts(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT loan_account_no
		FROM obligation_snapshots
		ORDER BY loan_account_no
	`

	var accounts []string
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &accounts, query); err != nil {
		return nil, err
	}

	return accounts, nil
}
