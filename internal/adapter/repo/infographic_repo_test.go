package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infographic/internal/domain"
	"infographic/internal/sqlinline"
)

// stubExecutor emulates the infographics table for the three inline queries.
type stubExecutor struct {
	ids  []string
	docs map[string][]byte
	err  error
}

func newStubExecutor() *stubExecutor {
	return &stubExecutor{docs: make(map[string][]byte)}
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.err != nil {
		return pgconn.CommandTag{}, s.err
	}
	if query != sqlinline.QInsertInfographic {
		return pgconn.CommandTag{}, fmt.Errorf("unsupported exec: %s", query)
	}
	id := args[0].(string)
	if _, ok := s.docs[id]; ok {
		return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"}
	}
	s.ids = append(s.ids, id)
	s.docs[id] = append([]byte(nil), args[1].([]byte)...)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return stubRow{scan: func(dest ...any) error {
		if s.err != nil {
			return s.err
		}
		if query != sqlinline.QGetInfographicByID {
			return fmt.Errorf("unsupported query: %s", query)
		}
		doc, ok := s.docs[args[0].(string)]
		if !ok {
			return pgx.ErrNoRows
		}
		*dest[0].(*[]byte) = doc
		return nil
	}}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.err != nil {
		return nil, s.err
	}
	if query != sqlinline.QListInfographics {
		return nil, fmt.Errorf("unsupported query: %s", query)
	}
	limit := args[0].(int)
	ids := s.ids
	if limit < len(ids) {
		ids = ids[:limit]
	}
	docs := make([][]byte, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, s.docs[id])
	}
	return &stubRows{docs: docs, pos: -1}, nil
}

func (s *stubExecutor) Ping(ctx context.Context) error { return s.err }

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

type stubRows struct {
	docs [][]byte
	pos  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, errors.New("not supported") }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	r.pos++
	return r.pos < len(r.docs)
}

func (r *stubRows) Scan(dest ...any) error {
	*dest[0].(*[]byte) = r.docs[r.pos]
	return nil
}

func sample(id string, ts time.Time) *domain.Infographic {
	return &domain.Infographic{
		ID:          id,
		ImageBase64: "data:image/png;base64,cG5nIQ==",
		Prompt:      "poster " + id,
		Timestamp:   ts,
	}
}

func TestInfographicRepositoryPGRoundTrip(t *testing.T) {
	db := newStubExecutor()
	repo := NewInfographicRepository(db)
	ctx := context.Background()
	ts := time.Date(2023, 8, 20, 10, 30, 0, 123456000, time.FixedZone("AEST", 10*3600))

	require.NoError(t, repo.Create(ctx, sample("a", ts)))
	assert.Contains(t, string(db.docs["a"]), `"timestamp":"2023-08-20T00:30:00.123456Z"`)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "poster a", got.Prompt)
	assert.True(t, ts.Equal(got.Timestamp))

	again, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestInfographicRepositoryPGListOrderAndLimit(t *testing.T) {
	db := newStubExecutor()
	repo := NewInfographicRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Create(ctx, sample(id, base.Add(time.Duration(i)*time.Minute))))
	}

	all, err := repo.List(ctx, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{all[0].ID, all[1].ID, all[2].ID})

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestInfographicRepositoryPGEmptyListIsNotNil(t *testing.T) {
	items, err := NewInfographicRepository(newStubExecutor()).List(context.Background(), 100)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestInfographicRepositoryPGErrors(t *testing.T) {
	ctx := context.Background()
	db := newStubExecutor()
	repo := NewInfographicRepository(db)

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Create(ctx, sample("dup", time.Now())))
	assert.ErrorIs(t, repo.Create(ctx, sample("dup", time.Now())), domain.ErrDuplicateOperation)

	db.err = errors.New("connection reset")
	_, err = repo.List(ctx, 10)
	assert.ErrorContains(t, err, "connection reset")
	_, err = repo.GetByID(ctx, "dup")
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Error(t, repo.Ping(ctx))
}

func TestFromDocumentRejectsBadTimestamp(t *testing.T) {
	_, err := fromDocument([]byte(`{"id":"x","timestamp":"yesterday"}`))
	assert.Error(t, err)
}
