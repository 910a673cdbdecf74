package tracking

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertLogQuery = `
		INSERT INTO tracking_logs (tracking_id, status, location, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING log_id`
	listLogsQuery = `
		SELECT log_id, tracking_id, status, location, note, created_at
		FROM tracking_logs WHERE tracking_id = $1 ORDER BY log_id`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(l TrackingLog) (TrackingLog, error) {
	err := r.db.QueryRow(insertLogQuery, l.TrackingID, l.Status, l.Location, l.Note, l.CreatedAt).
		Scan(&l.ID)
	if err != nil {
		return TrackingLog{}, err
	}
	return l, nil
}

func (r *PostgresRepository) ListByTrackingID(trackingID string) []TrackingLog {
	rows, err := r.db.Query(listLogsQuery, trackingID)
	if err != nil {
		return []TrackingLog{}
	}
	defer rows.Close()

	logs := make([]TrackingLog, 0)
	for rows.Next() {
		var l TrackingLog
		var location, note sql.NullString
		if err := rows.Scan(&l.ID, &l.TrackingID, &l.Status, &location, &note, &l.CreatedAt); err != nil {
			continue
		}
		l.Location = location.String
		l.Note = note.String
		logs = append(logs, l)
	}
	return logs
}
