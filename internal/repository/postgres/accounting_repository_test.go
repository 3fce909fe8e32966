package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/accounting"
	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/testutil"
)

func TestAccountingRepository_SaveAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	users := NewUserRepository(db)
	repo := NewAccountingRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dan@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	users.Create(ctx, u)

	if _, err := repo.Get(ctx, u.ID); err == nil {
		t.Error("Get() expected error for disconnected user")
	}

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	conn := &accounting.Connection{
		UserID:       u.ID,
		RealmID:      "realm-1",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    expiry,
	}
	if err := repo.Save(ctx, conn); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.RealmID != "realm-1" || got.AccessToken != "access-1" || got.RefreshToken != "refresh-1" {
		t.Errorf("Get() = %+v", got)
	}
	if !got.ExpiresAt.Equal(expiry) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, expiry)
	}
}

func TestAccountingRepository_SaveUpserts(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	users := NewUserRepository(db)
	repo := NewAccountingRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dan@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	users.Create(ctx, u)

	first := &accounting.Connection{
		UserID: u.ID, RealmID: "realm-1",
		AccessToken: "access-1", RefreshToken: "refresh-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	repo.Save(ctx, first)

	// Token rotation writes the pair over the existing row.
	rotated := &accounting.Connection{
		UserID: u.ID, RealmID: "realm-1",
		AccessToken: "access-2", RefreshToken: "refresh-2",
		ExpiresAt: time.Now().Add(2 * time.Hour),
	}
	if err := repo.Save(ctx, rotated); err != nil {
		t.Fatalf("Save() upsert error = %v", err)
	}

	got, err := repo.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.AccessToken != "access-2" || got.RefreshToken != "refresh-2" {
		t.Errorf("Get() after rotation = (%q, %q), want rotated pair", got.AccessToken, got.RefreshToken)
	}
}

func TestAccountingRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	users := NewUserRepository(db)
	repo := NewAccountingRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dan@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	users.Create(ctx, u)
	repo.Save(ctx, &accounting.Connection{
		UserID: u.ID, RealmID: "realm-1",
		AccessToken: "access-1", RefreshToken: "refresh-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, u.ID); err == nil {
		t.Error("Get() succeeded after delete")
	}

	// Disconnect is idempotent.
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Errorf("Delete() second call error = %v", err)
	}
}

func TestConnectionExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{name: "well before expiry", expiresAt: now.Add(time.Hour), want: false},
		{name: "inside skew margin", expiresAt: now.Add(10 * time.Second), want: true},
		{name: "past expiry", expiresAt: now.Add(-time.Minute), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &accounting.Connection{ExpiresAt: tt.expiresAt}
			if got := c.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
