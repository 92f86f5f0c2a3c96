// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gameedge/intelligence/internal/models"
)

func TestUpsertCustomerRoundtrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	email := "kai01@example.com"
	country := "GB"
	lastLogin := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)

	want := &models.Customer{
		ID:            uuid.NewString(),
		Username:      "kai01",
		Email:         &email,
		Country:       &country,
		RegisteredAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		LastLoginAt:   &lastLogin,
		TotalWagered:  1250.50,
		TotalWon:      990.25,
		LifetimeValue: 260.25,
		IsActive:      true,
	}
	if err := db.UpsertCustomer(ctx, want); err != nil {
		t.Fatalf("UpsertCustomer() failed: %v", err)
	}

	got, err := db.GetCustomer(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetCustomer() failed: %v", err)
	}

	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
	if got.Username != want.Username {
		t.Errorf("Username = %q, want %q", got.Username, want.Username)
	}
	if got.Email == nil || *got.Email != email {
		t.Errorf("Email = %v, want %q", got.Email, email)
	}
	if got.Country == nil || *got.Country != country {
		t.Errorf("Country = %v, want %q", got.Country, country)
	}
	if !got.RegisteredAt.Equal(want.RegisteredAt) {
		t.Errorf("RegisteredAt = %v, want %v", got.RegisteredAt, want.RegisteredAt)
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(lastLogin) {
		t.Errorf("LastLoginAt = %v, want %v", got.LastLoginAt, lastLogin)
	}
	if got.TotalWagered != want.TotalWagered {
		t.Errorf("TotalWagered = %v, want %v", got.TotalWagered, want.TotalWagered)
	}
	if got.TotalWon != want.TotalWon {
		t.Errorf("TotalWon = %v, want %v", got.TotalWon, want.TotalWon)
	}
	if got.LifetimeValue != want.LifetimeValue {
		t.Errorf("LifetimeValue = %v, want %v", got.LifetimeValue, want.LifetimeValue)
	}
	if !got.IsActive {
		t.Error("IsActive = false, want true")
	}
}

func TestUpsertCustomerUpdatesExisting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedCustomer(t, db, "original")

	updated := &models.Customer{
		ID:            id,
		Username:      "renamed",
		RegisteredAt:  time.Now().UTC().AddDate(0, 0, -365),
		LifetimeValue: 500,
		IsActive:      false,
	}
	if err := db.UpsertCustomer(ctx, updated); err != nil {
		t.Fatalf("UpsertCustomer() update failed: %v", err)
	}

	got, err := db.GetCustomer(ctx, id)
	if err != nil {
		t.Fatalf("GetCustomer() failed: %v", err)
	}
	if got.Username != "renamed" {
		t.Errorf("Username = %q, want %q", got.Username, "renamed")
	}
	if got.LifetimeValue != 500 {
		t.Errorf("LifetimeValue = %v, want 500", got.LifetimeValue)
	}
	if got.IsActive {
		t.Error("IsActive = true, want false after update")
	}

	// Still a single row.
	customers, _, _, err := db.GetRecordCounts(ctx)
	if err != nil {
		t.Fatalf("GetRecordCounts() failed: %v", err)
	}
	if customers != 1 {
		t.Errorf("customer count = %d, want 1", customers)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetCustomer(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCustomer(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpsertCustomersBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	batch := []models.Customer{
		{Username: "one", IsActive: true},
		{Username: "two", IsActive: true},
		{Username: "three", IsActive: false},
	}
	written, err := db.UpsertCustomers(ctx, batch)
	if err != nil {
		t.Fatalf("UpsertCustomers() failed: %v", err)
	}
	if written != 3 {
		t.Errorf("written = %d, want 3", written)
	}

	// Ids and timestamps were filled in.
	for i, c := range batch {
		if c.ID == "" {
			t.Errorf("batch[%d].ID not assigned", i)
		}
		if c.RegisteredAt.IsZero() {
			t.Errorf("batch[%d].RegisteredAt not assigned", i)
		}
	}

	customers, _, _, err := db.GetRecordCounts(ctx)
	if err != nil {
		t.Fatalf("GetRecordCounts() failed: %v", err)
	}
	if customers != 3 {
		t.Errorf("customer count = %d, want 3", customers)
	}
}

func TestUpsertCustomersEmptyBatch(t *testing.T) {
	db := setupTestDB(t)

	written, err := db.UpsertCustomers(context.Background(), nil)
	if err != nil {
		t.Fatalf("UpsertCustomers(nil) failed: %v", err)
	}
	if written != 0 {
		t.Errorf("written = %d, want 0", written)
	}
}

func TestCustomerExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id := seedCustomer(t, db, "present")

	exists, err := db.CustomerExists(ctx, id)
	if err != nil {
		t.Fatalf("CustomerExists() failed: %v", err)
	}
	if !exists {
		t.Error("CustomerExists() = false for seeded customer")
	}

	exists, err = db.CustomerExists(ctx, "absent")
	if err != nil {
		t.Fatalf("CustomerExists(absent) failed: %v", err)
	}
	if exists {
		t.Error("CustomerExists() = true for unknown id")
	}
}
