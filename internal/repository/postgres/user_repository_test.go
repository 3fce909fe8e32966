package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/hfletcher/jobsite/internal/domain/user"
	"github.com/hfletcher/jobsite/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	trialStart := time.Now().Truncate(time.Second)
	u := &user.User{
		Email:        "dan@example.com",
		Username:     "dan",
		CompanyName:  "Fletcher Construction",
		PasswordHash: "hashed",
		PlanType:     user.PlanTypeTrial,
		TrialStart:   &trialStart,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == 0 {
		t.Error("Create() did not set user ID")
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "dan@example.com" || got.CompanyName != "Fletcher Construction" {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.TrialStart == nil || !got.TrialStart.Equal(trialStart) {
		t.Errorf("TrialStart = %v, want %v", got.TrialStart, trialStart)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dan@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	repo.Create(ctx, u)

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "existing user", email: "dan@example.com"},
		{name: "unknown email", email: "nobody@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetByEmail(ctx, tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetByEmail() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserRepository_ProcessorRefs(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dan@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	repo.Create(ctx, u)

	if err := repo.SaveProcessorRefs(ctx, u.ID, "cus_1", "sub_1"); err != nil {
		t.Fatalf("SaveProcessorRefs() error = %v", err)
	}

	got, err := repo.GetByProcessorCustomer(ctx, "cus_1")
	if err != nil {
		t.Fatalf("GetByProcessorCustomer() error = %v", err)
	}
	if got.ID != u.ID || got.ProcessorSubscriptionID != "sub_1" {
		t.Errorf("GetByProcessorCustomer() = %+v", got)
	}

	if _, err := repo.GetByProcessorCustomer(ctx, "cus_unknown"); err == nil {
		t.Error("GetByProcessorCustomer() expected error for unknown customer")
	}
	if err := repo.SaveProcessorRefs(ctx, 999, "cus_x", "sub_x"); err == nil {
		t.Error("SaveProcessorRefs() expected error for unknown user")
	}
}

func TestUserRepository_SetSubscriptionState(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dan@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeCore}
	repo.Create(ctx, u)

	if err := repo.SetSubscriptionState(ctx, u.ID, true, true); err != nil {
		t.Fatalf("SetSubscriptionState() error = %v", err)
	}

	got, _ := repo.GetByID(ctx, u.ID)
	if !got.SubscriptionActive || !got.SetupPaid {
		t.Errorf("flags = (%v, %v), want (true, true)", got.SubscriptionActive, got.SetupPaid)
	}

	// Idempotent: writing the same state again is a no-op, not an error.
	if err := repo.SetSubscriptionState(ctx, u.ID, true, true); err != nil {
		t.Errorf("SetSubscriptionState() repeat error = %v", err)
	}

	if err := repo.SetSubscriptionState(ctx, u.ID, false, true); err != nil {
		t.Fatalf("SetSubscriptionState() error = %v", err)
	}
	got, _ = repo.GetByID(ctx, u.ID)
	if got.SubscriptionActive {
		t.Error("SubscriptionActive still set after deactivation")
	}
	if !got.SetupPaid {
		t.Error("SetupPaid lost on deactivation")
	}
}

func TestUserRepository_ListOnTrial(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	trial := &user.User{Email: "trial@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	repo.Create(ctx, trial)
	paid := &user.User{Email: "paid@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeCore}
	repo.Create(ctx, paid)
	repo.SetSubscriptionState(ctx, paid.ID, true, true)

	got, err := repo.ListOnTrial(ctx)
	if err != nil {
		t.Fatalf("ListOnTrial() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != trial.ID {
		t.Errorf("ListOnTrial() = %+v, want only the trial user", got)
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dan@example.com", PasswordHash: "hashed", PlanType: user.PlanTypeTrial}
	repo.Create(ctx, u)

	u.CompanyName = "Fletcher & Sons"
	u.PlanType = user.PlanTypePro
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, _ := repo.GetByID(ctx, u.ID)
	if got.CompanyName != "Fletcher & Sons" || got.PlanType != user.PlanTypePro {
		t.Errorf("Update() result = %+v", got)
	}

	missing := &user.User{ID: 999, Email: "x@example.com"}
	if err := repo.Update(ctx, missing); err == nil {
		t.Error("Update() expected error for unknown user")
	}
}
