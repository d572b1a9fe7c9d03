package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/371bohdan/Record-Play/internal/domain"
)

func TestUserLifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()

	// Create
	u, err := db.Create(ctx, "testuser", "tok@gmail.com", "hash1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID != 1 {
		t.Errorf("expected ID 1, got %d", u.ID)
	}

	// Duplicate username
	if _, err := db.Create(ctx, "testuser", "other@gmail.com", "hash2"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate username: expected ErrConflict, got %v", err)
	}

	// Duplicate email
	if _, err := db.Create(ctx, "otheruser", "tok@gmail.com", "hash2"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate email: expected ErrConflict, got %v", err)
	}

	// Lookups
	got, err := db.GetByUsername(ctx, "testuser")
	if err != nil || got.ID != u.ID {
		t.Errorf("GetByUsername: got %v, %v", got, err)
	}
	got, err = db.GetByEmail(ctx, "tok@gmail.com")
	if err != nil || got.ID != u.ID {
		t.Errorf("GetByEmail: got %v, %v", got, err)
	}
	got, err = db.GetByID(ctx, u.ID)
	if err != nil || got.Username != "testuser" {
		t.Errorf("GetByID: got %v, %v", got, err)
	}

	// Misses
	if _, err := db.GetByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.GetByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPendingResetLifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "testuser", "tok@gmail.com", "oldhash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	reset := domain.PendingReset{Token: "tok123", ExpiresAt: time.Now().Add(time.Hour)}
	if err := db.SetPendingReset(ctx, u.ID, reset); err != nil {
		t.Fatalf("SetPendingReset: %v", err)
	}
	if err := db.SetPendingReset(ctx, 999, reset); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unknown user: expected ErrNotFound, got %v", err)
	}

	got, err := db.GetByResetToken(ctx, "tok123")
	if err != nil {
		t.Fatalf("GetByResetToken: %v", err)
	}
	if got.Reset == nil || got.Reset.Token != "tok123" {
		t.Fatalf("expected pending reset on user, got %+v", got.Reset)
	}

	// The returned user is a copy; mutating it must not leak into the store.
	got.Reset.Token = "tampered"
	if again, _ := db.GetByResetToken(ctx, "tok123"); again == nil {
		t.Error("stored reset token was mutated through a returned copy")
	}

	// Consume
	if err := db.CompletePasswordReset(ctx, "tok123", "newhash", time.Now()); err != nil {
		t.Fatalf("CompletePasswordReset: %v", err)
	}
	after, _ := db.GetByID(ctx, u.ID)
	if after.PasswordHash != "newhash" {
		t.Errorf("expected new hash, got %q", after.PasswordHash)
	}
	if after.Reset != nil {
		t.Error("expected the grant to be cleared")
	}

	// The token is single-use.
	if err := db.CompletePasswordReset(ctx, "tok123", "anotherhash", time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second consume: expected ErrNotFound, got %v", err)
	}
}

func TestCompletePasswordReset_Expired(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, _ := db.Create(ctx, "testuser", "tok@gmail.com", "oldhash")
	reset := domain.PendingReset{Token: "stale", ExpiresAt: time.Now().Add(-time.Minute)}
	if err := db.SetPendingReset(ctx, u.ID, reset); err != nil {
		t.Fatalf("SetPendingReset: %v", err)
	}

	if err := db.CompletePasswordReset(ctx, "stale", "newhash", time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired grant, got %v", err)
	}
	after, _ := db.GetByID(ctx, u.ID)
	if after.PasswordHash != "oldhash" {
		t.Errorf("password must not change on an expired grant, got %q", after.PasswordHash)
	}
}

func TestSessionRepo(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, 1, "tok-a", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, 2, "tok-b", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := repo.GetByToken(ctx, "tok-a")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if s.UserID != 1 {
		t.Errorf("expected userID 1, got %d", s.UserID)
	}

	// The returned session is a copy; mutating it must not leak into the store.
	s.ExpiresAt = time.Now().Add(-time.Hour)
	again, err := repo.GetByToken(ctx, "tok-a")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if !again.ExpiresAt.After(time.Now()) {
		t.Error("stored expiry was mutated through a returned copy")
	}

	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if _, err := repo.GetByToken(ctx, "tok-b"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected expired session gone, got %v", err)
	}
	if _, err := repo.GetByToken(ctx, "tok-a"); err != nil {
		t.Errorf("live session must survive DeleteExpired, got %v", err)
	}

	if err := repo.Delete(ctx, "tok-a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByToken(ctx, "tok-a"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRecordLifecycle(t *testing.T) {
	db := New()
	ctx := context.Background()

	id1, err := db.AddRecord(ctx, &domain.WaterRecord{NamePlace: "Dnipro", CoordinateX: "22.1", CoordinateY: "3.5", Year: "2024", Season: "summer", ChemicalIndex: "pH", Result: 7.0})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	id2, err := db.AddRecord(ctx, &domain.WaterRecord{NamePlace: "Desna", CoordinateX: "30.0", CoordinateY: "50.2", Year: "2024", Season: "winter", ChemicalIndex: "NO3", Result: 1.2})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("ids must be monotonic: %d then %d", id1, id2)
	}

	// Get
	rec, err := db.GetRecord(ctx, id1)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if rec.NamePlace != "Dnipro" || rec.Result != 7.0 {
		t.Errorf("unexpected record: %+v", rec)
	}
	if _, err := db.GetRecord(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Update
	upd := *rec
	upd.Result = 6.5
	upd.Comment = "rechecked"
	if err := db.UpdateRecord(ctx, &upd); err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	rec, _ = db.GetRecord(ctx, id1)
	if rec.Result != 6.5 || rec.Comment != "rechecked" {
		t.Errorf("update not applied: %+v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("update must preserve the creation time")
	}
	if err := db.UpdateRecord(ctx, &domain.WaterRecord{ID: 999}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// List newest-first
	list, err := db.ListRecentRecords(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentRecords: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != id2 {
		t.Errorf("expected newest record first, got id %d", list[0].ID)
	}
	list, _ = db.ListRecentRecords(ctx, 1)
	if len(list) != 1 {
		t.Errorf("limit not applied, got %d records", len(list))
	}

	// Delete by place
	if err := db.DeleteRecordsByPlace(ctx, "Dnipro"); err != nil {
		t.Fatalf("DeleteRecordsByPlace: %v", err)
	}
	list, _ = db.ListRecentRecords(ctx, 10)
	if len(list) != 1 || list[0].NamePlace != "Desna" {
		t.Errorf("expected only Desna left, got %+v", list)
	}
}
