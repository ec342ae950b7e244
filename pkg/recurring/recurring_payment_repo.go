package recurring

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/penna/penna/pkg/schedule"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, userId string, payment RecurringPayment) (string, error)
	Get(ctx context.Context, userId string, id string) (RecurringPayment, error)
	GetAll(ctx context.Context, userId string, includeInactive bool) ([]RecurringPayment, error)
	Update(ctx context.Context, userId string, payment RecurringPayment) (bool, error)
	Delete(ctx context.Context, userId string, id string) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const paymentColumns = `id, name, amount, kind, frequency, start_date, end_date, business_day_policy, active`

func (r *RepoImpl) Store(ctx context.Context, userId string, payment RecurringPayment) (string, error) {
	id := uuid.NewString()
	query := `INSERT INTO recurring_payment (
					id,
					user_id,
					name,
					amount,
					kind,
					frequency,
					start_date,
					end_date,
					business_day_policy,
					active
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var endDateParam any
	if payment.Schedule.End != nil {
		endDateParam = payment.Schedule.End.String()
	}
	policy := payment.Schedule.Policy
	if policy == "" {
		policy = schedule.PolicyNone
	}

	_, err := r.db.ExecContext(ctx, query,
		id,
		userId,
		payment.Name,
		payment.Amount.String(),
		string(payment.Kind),
		string(payment.Schedule.Frequency),
		payment.Schedule.Start.String(),
		endDateParam,
		string(policy),
		payment.Active,
	)
	if err != nil {
		log.Errorf("could not store recurring payment: %v", err)
		return "", fmt.Errorf("could not store recurring payment: %w", err)
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, userId string, id string) (RecurringPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM recurring_payment WHERE user_id = $1 AND id = $2`
	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, userId, id))
	if errors.Is(err, sql.ErrNoRows) {
		return RecurringPayment{}, ErrPaymentNotFound
	}
	return payment, err
}

func (r *RepoImpl) GetAll(ctx context.Context, userId string, includeInactive bool) ([]RecurringPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM recurring_payment WHERE user_id = $1`
	if !includeInactive {
		query += ` AND active = $2`
	}
	query += ` ORDER BY start_date, name`

	var rows *sql.Rows
	var err error
	if includeInactive {
		rows, err = r.db.QueryContext(ctx, query, userId)
	} else {
		rows, err = r.db.QueryContext(ctx, query, userId, true)
	}
	if err != nil {
		log.Errorf("could not query recurring payments: %v", err)
		return nil, fmt.Errorf("could not query recurring payments: %w", err)
	}
	defer rows.Close()

	payments := make([]RecurringPayment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *RepoImpl) Update(ctx context.Context, userId string, payment RecurringPayment) (bool, error) {
	query := `UPDATE recurring_payment SET
					name = $1,
					amount = $2,
					kind = $3,
					frequency = $4,
					start_date = $5,
					end_date = $6,
					business_day_policy = $7,
					active = $8
				WHERE user_id = $9 AND id = $10`

	var endDateParam any
	if payment.Schedule.End != nil {
		endDateParam = payment.Schedule.End.String()
	}
	policy := payment.Schedule.Policy
	if policy == "" {
		policy = schedule.PolicyNone
	}

	result, err := r.db.ExecContext(ctx, query,
		payment.Name,
		payment.Amount.String(),
		string(payment.Kind),
		string(payment.Schedule.Frequency),
		payment.Schedule.Start.String(),
		endDateParam,
		string(policy),
		payment.Active,
		userId,
		payment.Id,
	)
	if err != nil {
		log.Errorf("could not update recurring payment: %v", err)
		return false, fmt.Errorf("could not update recurring payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId string, id string) (bool, error) {
	query := `DELETE FROM recurring_payment WHERE user_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, userId, id)
	if err != nil {
		log.Errorf("could not delete recurring payment: %v", err)
		return false, fmt.Errorf("could not delete recurring payment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (RecurringPayment, error) {
	var payment RecurringPayment
	var amount string
	var kind, frequency, policy string
	var startDate string
	var endDate sql.NullString

	err := row.Scan(
		&payment.Id,
		&payment.Name,
		&amount,
		&kind,
		&frequency,
		&startDate,
		&endDate,
		&policy,
		&payment.Active,
	)
	if err != nil {
		return RecurringPayment{}, err
	}

	payment.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return RecurringPayment{}, fmt.Errorf("stored amount %q is not a decimal: %w", amount, err)
	}
	payment.Kind = Kind(kind)
	payment.Schedule.Frequency = schedule.Frequency(frequency)
	payment.Schedule.Policy = schedule.BusinessDayPolicy(policy)
	payment.Schedule.Start, err = schedule.ParseDate(startDate)
	if err != nil {
		return RecurringPayment{}, fmt.Errorf("stored start date %q is invalid: %w", startDate, err)
	}
	if endDate.Valid {
		end, err := schedule.ParseDate(endDate.String)
		if err != nil {
			return RecurringPayment{}, fmt.Errorf("stored end date %q is invalid: %w", endDate.String, err)
		}
		payment.Schedule.End = &end
	}
	return payment, nil
}
