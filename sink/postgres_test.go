package sink

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/PhucNguyen204/hscan"
)

var errTest = errors.New("boom")

func TestInitSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS hscan_matches").
		WillReturnResult(sqlmock.NewResult(0, 0))

	pg := NewPostgres(db)
	if err := pg.InitSchema(context.Background()); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestHandlerRecordsMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO hscan_matches").
		WithArgs("scan-1", int64(0), int64(4), int64(8)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	block, err := hscan.NewBlockDatabase(hscan.NewPattern("test", hscan.Caseless|hscan.SomLeftmost))
	if err != nil {
		t.Fatalf("NewBlockDatabase: %v", err)
	}
	scratch, err := hscan.NewScratch(block)
	if err != nil {
		t.Fatalf("NewScratch: %v", err)
	}
	defer scratch.Free()

	pg := NewPostgres(db)
	handler := pg.Handler(context.Background(), "scan-1")
	if err := block.Scan([]byte("foo test bar"), scratch, handler); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if err := pg.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestHandlerKeepsFirstInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO hscan_matches").
		WillReturnError(errTest)

	pg := NewPostgres(db)
	handler := pg.Handler(context.Background(), "scan-2")

	// A failed insert never terminates the scan.
	if cont := handler(0, 0, 4, 0); !cont {
		t.Fatal("handler = false, want true")
	}
	if err := pg.Err(); err == nil {
		t.Fatal("Err = nil, want insert error")
	}
	// Err clears the stored failure.
	if err := pg.Err(); err != nil {
		t.Fatalf("second Err = %v, want nil", err)
	}
}
