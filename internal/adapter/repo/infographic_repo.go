package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"infographic/internal/domain"
	"infographic/internal/infra"
	"infographic/internal/sqlinline"
)

// infographicDocument is the stored JSON shape. The timestamp is kept as an
// ISO-8601 string.
type infographicDocument struct {
	ID          string `json:"id"`
	ImageBase64 string `json:"image_base64"`
	Prompt      string `json:"prompt"`
	Timestamp   string `json:"timestamp"`
}

// InfographicRepositoryPG implements domain.InfographicRepository on a jsonb
// document table.
type InfographicRepositoryPG struct {
	db infra.SQLExecutor
}

func NewInfographicRepository(db infra.SQLExecutor) *InfographicRepositoryPG {
	return &InfographicRepositoryPG{db: db}
}

func (r *InfographicRepositoryPG) Create(ctx context.Context, in *domain.Infographic) error {
	doc, err := json.Marshal(toDocument(in))
	if err != nil {
		return fmt.Errorf("encode infographic: %w", err)
	}
	if _, err := r.db.Exec(ctx, sqlinline.QInsertInfographic, in.ID, doc); err != nil {
		if infra.IsUniqueViolation(err) {
			return domain.ErrDuplicateOperation
		}
		return fmt.Errorf("insert infographic: %w", err)
	}
	return nil
}

func (r *InfographicRepositoryPG) List(ctx context.Context, limit int) ([]domain.Infographic, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListInfographics, limit)
	if err != nil {
		return nil, fmt.Errorf("list infographics: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Infographic, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan infographic: %w", err)
		}
		item, err := fromDocument(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list infographics: %w", err)
	}
	return out, nil
}

func (r *InfographicRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Infographic, error) {
	var raw []byte
	if err := r.db.QueryRow(ctx, sqlinline.QGetInfographicByID, id).Scan(&raw); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get infographic: %w", err)
	}
	return fromDocument(raw)
}

func (r *InfographicRepositoryPG) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func toDocument(in *domain.Infographic) infographicDocument {
	return infographicDocument{
		ID:          in.ID,
		ImageBase64: in.ImageBase64,
		Prompt:      in.Prompt,
		Timestamp:   in.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func fromDocument(raw []byte) (*domain.Infographic, error) {
	var doc infographicDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode infographic: %w", err)
	}
	out := &domain.Infographic{
		ID:          doc.ID,
		ImageBase64: doc.ImageBase64,
		Prompt:      doc.Prompt,
	}
	if doc.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, doc.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("decode infographic %s timestamp: %w", doc.ID, err)
		}
		out.Timestamp = ts
	}
	return out, nil
}

var _ domain.InfographicRepository = (*InfographicRepositoryPG)(nil)
