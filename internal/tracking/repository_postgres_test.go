package tracking

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresAppend_ReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("INSERT INTO tracking_logs").
		WillReturnRows(sqlmock.NewRows([]string{"log_id"}).AddRow(5))

	l, err := repo.Append(TrackingLog{TrackingID: "trk-1", Status: "Cutting started"})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if l.ID != 5 {
		t.Fatalf("expected assigned id 5, got %d", l.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresListByTrackingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"log_id", "tracking_id", "status", "location", "note", "created_at"}).
		AddRow(1, "trk-1", "Order placed", nil, nil, "t1").
		AddRow(2, "trk-1", "Cutting started", "Floor 2", "rush", "t2")
	mock.ExpectQuery("FROM tracking_logs WHERE tracking_id").WithArgs("trk-1").WillReturnRows(rows)

	logs := repo.ListByTrackingID("trk-1")
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].Location != "" || logs[1].Location != "Floor 2" {
		t.Fatalf("null location scan wrong: %+v", logs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
