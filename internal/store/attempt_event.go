package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo over the attempt_events table.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	if data.AttemptID == "" {
		return fmt.Errorf("append attempt: empty attempt id")
	}
	if data.Action != ActionSubmit && data.Action != ActionRetake {
		return fmt.Errorf("append attempt: unknown action %q", data.Action)
	}

	answers, err := json.Marshal(data.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	answered := AttemptEvent{AttemptEventData: data}.AnsweredCount()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(attemptTable).
		Columns(colSequence, colTimestamp, colAttemptID, colAction, colQuestions, colAnswered, colAnswers).
		Values(seqNum, time.Now().UTC(), data.AttemptID, data.Action, data.QuestionCount, answered, string(answers)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	var preds []*entsql.Predicate
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(colTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(colTimestamp, opts.To.UTC()))
	}
	if opts.Action != "" {
		preds = append(preds, entsql.EQ(colAction, opts.Action))
	}
	if opts.AttemptID != "" {
		preds = append(preds, entsql.EQ(colAttemptID, opts.AttemptID))
	}

	sel := entsql.Dialect(dialect.SQLite).
		Select(colID, colSequence, colTimestamp, colAttemptID, colAction, colQuestions, colAnswers).
		From(entsql.Table(attemptTable)).
		OrderBy(entsql.Desc(colSequence))
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var (
			e       AttemptEvent
			answers sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.AttemptID, &e.Action, &e.QuestionCount, &answers); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		if answers.Valid && answers.String != "" {
			if err := json.Unmarshal([]byte(answers.String), &e.Answers); err != nil {
				return nil, fmt.Errorf("unmarshal answers for event %d: %w", e.ID, err)
			}
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	return events, nil
}
