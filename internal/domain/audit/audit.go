package audit

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ActionIngest         = "payslips.ingest"
	ActionDispatch       = "payslips.dispatch"
	ActionEmployeeCreate = "employees.create"
	ActionEmployeeUpdate = "employees.update"
	ActionEmployeeDelete = "employees.delete"
	ActionEmployeeImport = "employees.import"
	ActionLogin          = "auth.login"
)

type Event struct {
	ID         string          `json:"id"`
	Actor      string          `json:"actor"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	Actor      string
}

// Service persists audit events. Without a pool nothing is recorded and
// listings are empty.
type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, actor, action, entityType, entityID, requestID, ip string, before, after any) error {
	if s == nil || s.DB == nil {
		return nil
	}
	beforeJSON, err := marshalOptional(before)
	if err != nil {
		return fmt.Errorf("marshal audit before: %w", err)
	}
	afterJSON, err := marshalOptional(after)
	if err != nil {
		return fmt.Errorf("marshal audit after: %w", err)
	}

	_, err = s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor, action, entity_type, entity_id, before_json, after_json, request_id, ip)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, actor, action, entityType, entityID, beforeJSON, afterJSON, requestID, ip)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	if s.DB == nil {
		return 0, nil
	}
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	if s.DB == nil {
		return []Event{}, nil
	}
	selectCols := "id::text, actor, action, entity_type, entity_id, request_id, ip, created_at"
	if includeDetails {
		selectCols += ", before_json, after_json"
	}
	query, args := buildBaseQuery("SELECT "+selectCols, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var evt Event
		dest := []any{&evt.ID, &evt.Actor, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt}
		if includeDetails {
			dest = append(dest, &evt.Before, &evt.After)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

// WriteCSV streams events in the column order used by the export endpoint.
func WriteCSV(w io.Writer, events []Event) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "actor", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}); err != nil {
		return err
	}
	for _, evt := range events {
		row := []string{evt.ID, evt.Actor, evt.Action, evt.EntityType, evt.EntityID, evt.RequestID, evt.IP, evt.CreatedAt.UTC().Format(time.RFC3339)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func marshalOptional(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1=1"
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.Actor != "" {
		args = append(args, filter.Actor)
		query += fmt.Sprintf(" AND actor = $%d", len(args))
	}
	return query, args
}
