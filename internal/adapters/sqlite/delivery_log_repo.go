package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tebexd/internal/ctxutil"
	"github.com/example/tebexd/internal/ports/secondary"
)

const defaultDeliveryLimit = 50

// DeliveryLogRepository implements secondary.DeliveryLog with SQLite.
type DeliveryLogRepository struct {
	db *sql.DB
}

// NewDeliveryLogRepository creates a new SQLite delivery log repository.
func NewDeliveryLogRepository(db *sql.DB) *DeliveryLogRepository {
	return &DeliveryLogRepository{db: db}
}

// Record persists a new delivery log entry. The pass ID is taken from the
// record when set, otherwise from ctx.
func (r *DeliveryLogRepository) Record(ctx context.Context, record *secondary.DeliveryRecord) error {
	passID := record.PassID
	if passID == "" {
		passID = ctxutil.PassIDFromContext(ctx)
	}

	var passIDValue, detail sql.NullString
	if passID != "" {
		passIDValue = sql.NullString{String: passID, Valid: true}
	}
	if record.Detail != "" {
		detail = sql.NullString{String: record.Detail, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO delivery_log (pass_id, account_id, principal, channel, command_id, action, detail) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		passIDValue,
		record.AccountID,
		record.Principal,
		record.Channel,
		record.CommandID,
		string(record.Action),
		detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}

	return nil
}

// Recent retrieves the newest delivery log entries matching filters.
func (r *DeliveryLogRepository) Recent(ctx context.Context, filters secondary.DeliveryFilters) ([]*secondary.DeliveryRecord, error) {
	query := `SELECT id, pass_id, account_id, principal, channel, command_id, action, detail, created_at FROM delivery_log WHERE 1=1`
	args := []any{}

	if filters.AccountID != "" {
		query += " AND account_id = ?"
		args = append(args, filters.AccountID)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultDeliveryLimit
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var records []*secondary.DeliveryRecord
	for rows.Next() {
		var (
			passID    sql.NullString
			detail    sql.NullString
			action    string
			createdAt time.Time
		)

		record := &secondary.DeliveryRecord{}
		err := rows.Scan(&record.ID, &passID, &record.AccountID, &record.Principal, &record.Channel,
			&record.CommandID, &action, &detail, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		record.PassID = passID.String
		record.Detail = detail.String
		record.Action = secondary.DeliveryAction(action)
		record.CreatedAt = createdAt.Format(time.RFC3339)

		records = append(records, record)
	}

	return records, rows.Err()
}

// Ensure DeliveryLogRepository implements the interface
var _ secondary.DeliveryLog = (*DeliveryLogRepository)(nil)
