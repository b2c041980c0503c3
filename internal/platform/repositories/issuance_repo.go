package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"billingform/internal/platform/models"
)

type IssuanceRepository struct {
	db *sql.DB
}

func NewIssuanceRepository(db *sql.DB) *IssuanceRepository {
	return &IssuanceRepository{db: db}
}

func (r *IssuanceRepository) Create(ctx context.Context, iss *models.Issuance) error {
	if iss.ID == "" {
		iss.ID = "iss_" + uuid.New().String()
	}
	if iss.CreatedAt == 0 {
		iss.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO issuances (id, client_id, action, subdomain, environment, signature, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query, iss.ID, iss.ClientID, iss.Action, iss.Subdomain, iss.Environment, iss.Signature, iss.CreatedAt)
	return err
}

func (r *IssuanceRepository) ListRecent(ctx context.Context, limit int) ([]*models.Issuance, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `SELECT id, client_id, action, subdomain, environment, signature, created_at FROM issuances ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issuances := []*models.Issuance{}
	for rows.Next() {
		var iss models.Issuance
		if err := rows.Scan(&iss.ID, &iss.ClientID, &iss.Action, &iss.Subdomain, &iss.Environment, &iss.Signature, &iss.CreatedAt); err != nil {
			return nil, err
		}
		issuances = append(issuances, &iss)
	}
	return issuances, rows.Err()
}

func (r *IssuanceRepository) CountByAction(ctx context.Context, since int64) ([]models.ActionCount, error) {
	query := `SELECT action, COUNT(*) FROM issuances WHERE created_at >= ? GROUP BY action ORDER BY action`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.ActionCount{}
	for rows.Next() {
		var c models.ActionCount
		if err := rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DeleteBefore removes entries created before ts and returns how many went.
func (r *IssuanceRepository) DeleteBefore(ctx context.Context, ts int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM issuances WHERE created_at < ?`, ts)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
