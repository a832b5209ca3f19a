package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stacksolutions/estimator/internal/model"
)

// testPoolURL returns ESTIMATOR_TEST_DATABASE_URL, which must point at a
// migrated database. Tests are skipped when it is unset.
func testPoolURL(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("ESTIMATOR_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ESTIMATOR_TEST_DATABASE_URL not set")
	}
	return url
}

func TestPgEstimateRepository_SaveAndGet(t *testing.T) {
	url := testPoolURL(t)
	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{URL: url})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	repo := NewPgEstimateRepository(pool)
	rec := record(uuid.NewString(), model.EstimateKindROI, time.Now().UTC().Truncate(time.Microsecond))
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Kind != model.EstimateKindROI || !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("unexpected record %+v", got)
	}
	if _, err := repo.GetByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	recent, err := repo.ListRecent(ctx, model.EstimateKindROI, 5)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	for _, r := range recent {
		if r.Kind != model.EstimateKindROI {
			t.Errorf("expected roi records only, got %q", r.Kind)
		}
	}
}

func TestPgBookingRepository_UniqueSlot(t *testing.T) {
	url := testPoolURL(t)
	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{URL: url})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	repo := NewPgBookingRepository(pool)
	date := time.Now().AddDate(5, 0, int(time.Now().UnixNano()%300)).Format("2006-01-02")
	b := &model.ConsultationBooking{
		ID: uuid.NewString(), Name: "Test", Email: "t@example.com", Phone: "5551234567",
		ProjectType: "web", Budget: "10k-25k", Date: date, Slot: "09:00 AM",
		MeetingType: "video", CreatedAt: time.Now().UTC(),
	}
	if err := repo.Save(ctx, b); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	dup := *b
	dup.ID = uuid.NewString()
	if err := repo.Save(ctx, &dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	got, err := repo.ListByDate(ctx, date)
	if err != nil {
		t.Fatalf("ListByDate failed: %v", err)
	}
	if len(got) != 1 || got[0].Date != date {
		t.Errorf("unexpected bookings %+v", got)
	}
}

func TestPgContactRepository_SaveAndSchema(t *testing.T) {
	url := testPoolURL(t)
	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{URL: url})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pool.Close()

	if missing, err := MissingTables(ctx, pool); err != nil || len(missing) != 0 {
		t.Fatalf("expected migrated database, missing=%v err=%v", missing, err)
	}

	repo := NewPgContactRepository(pool)
	msg := &model.ContactMessage{
		ID: uuid.NewString(), FirstName: "Ana", LastName: "Perez", Email: "ana@example.com",
		ProjectType: "web", Budget: "15k-30k", Description: "We need a customer portal rebuilt.",
		Status: model.ContactStatusUnread, CreatedAt: time.Now().UTC(),
	}
	if err := repo.Save(ctx, msg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var phone *string
	if err := pool.QueryRow(ctx, `SELECT phone FROM contact_messages WHERE id = $1`, msg.ID).Scan(&phone); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if phone != nil {
		t.Errorf("expected empty phone stored as NULL, got %q", *phone)
	}
}
