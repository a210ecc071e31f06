package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"docquery/internal/providers"
)

type LLMCallRecord struct {
	CallID       string
	Operation    string
	ProviderName string
	Model        string
	KeyAlias     string
	Status       string
	ErrorType    string
	ErrorMessage string
	Duration     time.Duration
	CreatedAt    time.Time
}

type LLMAuditRepo struct {
	db *DB
}

func NewLLMAuditRepo(db *DB) *LLMAuditRepo {
	return &LLMAuditRepo{db: db}
}

func (r *LLMAuditRepo) Insert(ctx context.Context, rec LLMCallRecord) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO llm_calls(call_id, operation, provider_name, model, key_alias, status, error_type, error_message, duration_ms)
VALUES (COALESCE(NULLIF($1,'')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, NULLIF($7,''), NULLIF($8,''), $9)`,
		rec.CallID, rec.Operation, rec.ProviderName, rec.Model, rec.KeyAlias, rec.Status, rec.ErrorType, rec.ErrorMessage, rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert llm call: %w", err)
	}
	return nil
}

// Recent returns the newest calls first.
func (r *LLMAuditRepo) Recent(ctx context.Context, limit int) ([]LLMCallRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT call_id::text, operation, provider_name, model, key_alias, status,
       COALESCE(error_type,''), COALESCE(error_message,''), duration_ms, created_at
FROM llm_calls ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm calls: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (LLMCallRecord, error) {
		var rec LLMCallRecord
		var ms int64
		err := row.Scan(&rec.CallID, &rec.Operation, &rec.ProviderName, &rec.Model, &rec.KeyAlias,
			&rec.Status, &rec.ErrorType, &rec.ErrorMessage, &ms, &rec.CreatedAt)
		rec.Duration = time.Duration(ms) * time.Millisecond
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan llm calls: %w", err)
	}
	return out, nil
}

// RecordFromCall converts a provider attempt into an audit row.
func RecordFromCall(call providers.Call) LLMCallRecord {
	rec := LLMCallRecord{
		CallID:       call.ID,
		Operation:    call.Operation,
		ProviderName: call.Provider.Name,
		Model:        call.Provider.Model,
		KeyAlias:     call.Provider.Key,
		Status:       "ok",
		Duration:     call.Duration,
	}
	if call.Err != nil {
		rec.Status = "error"
		rec.ErrorType = string(providers.ClassifyError(call.Err))
		rec.ErrorMessage = call.Err.Error()
	}
	return rec
}

// Observer returns a providers.CallObserver that audits every call. Insert
// failures are passed to onErr and never affect the caller.
func (r *LLMAuditRepo) Observer(onErr func(error)) providers.CallObserver {
	return func(ctx context.Context, call providers.Call) {
		if err := r.Insert(ctx, RecordFromCall(call)); err != nil && onErr != nil {
			onErr(err)
		}
	}
}
