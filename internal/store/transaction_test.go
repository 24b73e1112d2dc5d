package store

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/pkg/helpers"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTransactionStoreWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := helpers.TestCtx()
	store := NewTransactionStore(client)
	uid := "user-" + t.Name()

	txs := []models.Transaction{
		{Amount: -450, Category: "Grocery", Description: "Grocery", Date: "2024-03-05T00:00:00.000Z"},
		{Amount: 4.5, Category: "Food", Description: "Coffee", Date: "2024-03-06T00:00:00.000Z", Account: "acct-1"},
	}
	if err := store.CreateBatch(ctx, uid, txs); err != nil {
		t.Fatalf("create batch error: %v", err)
	}
	if txs[0].ID == "" || txs[1].ID == "" {
		t.Fatalf("expected IDs to be assigned: %+v", txs)
	}

	single := &models.Transaction{Amount: -200, Category: categories.Cash, Date: "2024-03-07T00:00:00.000Z", ExcludeFromSummary: true}
	if err := store.Create(ctx, uid, single); err != nil {
		t.Fatalf("create error: %v", err)
	}

	all, err := store.List(ctx, uid)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(all))
	}

	category := "Food"
	var results []models.Transaction
	err = store.Query(ctx, uid, dto.TransactionQuery{Category: &category}, func(tx *models.Transaction) error {
		results = append(results, *tx)
		return nil
	})
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(results) != 1 || results[0].ID != txs[1].ID {
		t.Fatalf("unexpected query results: %+v", results)
	}

	single.Description = "Petty cash"
	if err := store.Update(ctx, uid, single); err != nil {
		t.Fatalf("update error: %v", err)
	}
	got, err := store.Get(ctx, uid, single.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Description != "Petty cash" || !got.ExcludeFromSummary {
		t.Fatalf("unexpected transaction: %+v", got)
	}

	if err := store.Delete(ctx, uid, single.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := store.Get(ctx, uid, single.ID); err == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestCategoryStoreWithEmulator(t *testing.T) {
	client := emulatorClient(t)
	ctx := helpers.TestCtx()
	store := NewCategoryStore(client)
	uid := "user-" + t.Name()

	first := &categories.Custom{Name: "Pets", Keywords: []string{"cat"}}
	second := &categories.Custom{Name: categories.OtherAccountName, Keywords: categories.OtherAccountKeywords, IsOtherAccount: true}
	for _, c := range []*categories.Custom{first, second} {
		if err := store.Create(ctx, uid, c); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	list, err := store.List(ctx, uid)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Pets" {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := store.Delete(ctx, uid, first.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := store.Get(ctx, uid, first.ID); err == nil {
		t.Fatal("expected not found after delete")
	}
}
