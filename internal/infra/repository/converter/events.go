package converter

import (
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/pkg/pgconv"
	"parking-core/internal/usecase/shared"
)

func OutboxToRow(ev shared.OutboxEvent) pgquery.OutboxRow {
	status := ev.Status
	if status == "" {
		status = shared.OutboxPending
	}
	return pgquery.OutboxRow{
		ID:        ev.ID,
		Topic:     ev.Topic,
		Payload:   ev.Payload,
		Status:    string(status),
		Attempts:  int32(min(ev.Attempts, 1<<30)),
		RunAt:     ev.RunAt,
		LastError: pgconv.StringToPgtype(ev.LastError),
		CreatedAt: ev.CreatedAt,
	}
}

func OutboxFromRow(row pgquery.OutboxRow) shared.OutboxEvent {
	return shared.OutboxEvent{
		ID:        row.ID,
		Topic:     row.Topic,
		Payload:   row.Payload,
		RunAt:     row.RunAt,
		Attempts:  int(row.Attempts),
		Status:    shared.OutboxStatus(row.Status),
		LastError: pgconv.StringFromPgtype(row.LastError),
		CreatedAt: row.CreatedAt,
	}
}

func FlagFromRow(row pgquery.FlagRow) shared.ReconciliationFlag {
	return shared.ReconciliationFlag{
		ID:         row.ID,
		Kind:       shared.FlagKind(row.Kind),
		SubjectID:  row.SubjectID,
		Detail:     row.Detail,
		DetectedAt: row.DetectedAt,
	}
}
