package services

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/categories"
	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/parser"
	"github.com/GregMSThompson/expense-backend/pkg/helpers"
)

var testNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func newTestTransactionService(txs *fakeTransactionStore, cats *fakeCategoryStore) *transactionService {
	return newTransactionService(txs, cats, categories.NewRegistry(), time.UTC, func() time.Time { return testNow })
}

func TestQuickAddStoresParsedTransaction(t *testing.T) {
	txs := &fakeTransactionStore{}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	got, err := svc.QuickAdd(helpers.TestCtx(), "uid1", dto.QuickAddRequest{Text: "Pad Thai 120 baht", AccountID: "personal"})
	if err != nil {
		t.Fatalf("QuickAdd error: %v", err)
	}

	if got.ID == "" {
		t.Fatal("expected ID to be assigned")
	}
	if got.Amount != -120 || got.Category != "Food" || got.Description != "Pad Thai" {
		t.Fatalf("unexpected transaction: %+v", got)
	}
	if got.Account != "personal" {
		t.Fatalf("account mismatch: got %q", got.Account)
	}
	if got.Date != "2024-03-10T09:30:00.000Z" {
		t.Fatalf("date mismatch: got %q", got.Date)
	}
	if len(txs.created) != 1 {
		t.Fatalf("expected 1 stored transaction, got %d", len(txs.created))
	}
}

func TestQuickAddUsesCustomCategories(t *testing.T) {
	txs := &fakeTransactionStore{}
	cats := &fakeCategoryStore{custom: []categories.Custom{{ID: "c1", Name: "Pets", Keywords: []string{"cat"}}}}
	svc := newTestTransactionService(txs, cats)

	got, err := svc.QuickAdd(helpers.TestCtx(), "uid1", dto.QuickAddRequest{Text: "cat food 300"})
	if err != nil {
		t.Fatalf("QuickAdd error: %v", err)
	}
	if got.Category != "Pets" {
		t.Fatalf("category mismatch: got %q", got.Category)
	}
}

func TestQuickAddNoAmount(t *testing.T) {
	txs := &fakeTransactionStore{}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	_, err := svc.QuickAdd(helpers.TestCtx(), "uid1", dto.QuickAddRequest{Text: "coffee"})
	if !errors.Is(err, parser.ErrNoAmount) {
		t.Fatalf("expected ErrNoAmount, got %v", err)
	}
	if len(txs.created) != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestQuickAddStoreError(t *testing.T) {
	storeErr := errs.NewDatabaseError("create", "failed", errors.New("boom"))
	svc := newTestTransactionService(&fakeTransactionStore{createErr: storeErr}, &fakeCategoryStore{})

	_, err := svc.QuickAdd(helpers.TestCtx(), "uid1", dto.QuickAddRequest{Text: "bus 30"})
	if err != storeErr {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestCreateTransactionSignsByDirection(t *testing.T) {
	txs := &fakeTransactionStore{}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	expense, err := svc.CreateTransaction(helpers.TestCtx(), "uid1", dto.CreateTransactionRequest{
		Type:      "expense",
		Amount:    45.5,
		Category:  "Office Supplies",
		AccountID: "business",
	})
	if err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}
	if expense.Amount != -45.5 || !expense.IsExpense() {
		t.Fatalf("expected negative amount, got %v", expense.Amount)
	}
	if expense.Description != "Office Supplies" {
		t.Fatalf("description should fall back to category, got %q", expense.Description)
	}
	if expense.Date != "2024-03-10T09:30:00.000Z" {
		t.Fatalf("date mismatch: got %q", expense.Date)
	}
	if expense.Account != "business" || expense.ExcludeFromSummary {
		t.Fatalf("unexpected transaction: %+v", expense)
	}

	income, err := svc.CreateTransaction(helpers.TestCtx(), "uid1", dto.CreateTransactionRequest{
		Type:        "income",
		Amount:      -300,
		Category:    "Sales Revenue",
		Description: " March invoice ",
		Date:        helpers.Ptr("2024-03-02"),
		Time:        helpers.Ptr("14:00"),
	})
	if err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}
	if income.Amount != 300 || !income.IsIncome() {
		t.Fatalf("expected positive amount, got %v", income.Amount)
	}
	if income.Description != "March invoice" || income.Date != "2024-03-02T14:00:00.000Z" {
		t.Fatalf("unexpected transaction: %+v", income)
	}
	if len(txs.created) != 2 {
		t.Fatalf("expected 2 stored transactions, got %d", len(txs.created))
	}
}

func TestCreateTransactionExcludesPassThrough(t *testing.T) {
	txs := &fakeTransactionStore{}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	got, err := svc.CreateTransaction(helpers.TestCtx(), "uid1", dto.CreateTransactionRequest{Type: "expense", Amount: 500, Category: categories.Cash})
	if err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}
	if !got.ExcludeFromSummary {
		t.Fatal("expected cash withdrawal to be excluded")
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	cases := map[string]dto.CreateTransactionRequest{
		"missing type":     {Amount: 10, Category: "Food"},
		"unknown type":     {Type: "transfer", Amount: 10, Category: "Food"},
		"zero amount":      {Type: "expense", Category: "Food"},
		"missing category": {Type: "expense", Amount: 10},
		"unknown category": {Type: "expense", Amount: 10, Category: "Nope"},
		"bad date":         {Type: "expense", Amount: 10, Category: "Food", Date: helpers.Ptr("10/03/2024")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			txs := &fakeTransactionStore{}
			svc := newTestTransactionService(txs, &fakeCategoryStore{})

			_, err := svc.CreateTransaction(helpers.TestCtx(), "uid1", req)
			if _, ok := err.(*errs.ValidationError); !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(txs.created) != 0 {
				t.Fatal("store must not be written")
			}
		})
	}
}

func TestImportStatement(t *testing.T) {
	txs := &fakeTransactionStore{}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	got, err := svc.ImportStatement(helpers.TestCtx(), "uid1", dto.ImportStatementRequest{
		Text:      "March 2024\n3/5/24\nGrocery 450 baht\nnoise line\n",
		AccountID: "personal",
		File:      "march.pdf",
	})
	if err != nil {
		t.Fatalf("ImportStatement error: %v", err)
	}

	if got.Imported != 1 || len(got.Transactions) != 1 {
		t.Fatalf("unexpected import result: %+v", got)
	}
	tx := got.Transactions[0]
	if tx.ID == "" || tx.Amount != -450 || tx.Category != "Grocery" || tx.File != "march.pdf" || tx.Account != "personal" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if len(got.Skipped) != 1 {
		t.Fatalf("expected 1 skipped line, got %d", len(got.Skipped))
	}
	if len(txs.created) != 1 {
		t.Fatalf("expected 1 stored transaction, got %d", len(txs.created))
	}
}

func TestImportStatementNothingFound(t *testing.T) {
	txs := &fakeTransactionStore{}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	_, err := svc.ImportStatement(helpers.TestCtx(), "uid1", dto.ImportStatementRequest{Text: "Account summary\nno rows"})
	if err != ErrNoStatementTransactions {
		t.Fatalf("expected ErrNoStatementTransactions, got %v", err)
	}
	if len(txs.created) != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestListTransactionsFiltersAndSorts(t *testing.T) {
	txs := &fakeTransactionStore{txs: []models.Transaction{
		{ID: "a", Date: "2024-03-01T00:00:00.000Z", Category: "Food", Account: "personal"},
		{ID: "b", Date: "2024-03-05T00:00:00.000Z", Category: "Grocery"},
		{ID: "c", Date: "2024-03-03T00:00:00.000Z", Category: "Food", Account: "business"},
		{ID: "d", Date: "2024-02-20T00:00:00.000Z", Category: "Food"},
		{ID: "e", Date: "2024-03-09T00:00:00.000Z", Category: "ETF"},
	}}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	got, err := svc.ListTransactions(helpers.TestCtx(), "uid1", dto.ListTransactionsQuery{
		AccountID: "personal",
		MonthYear: "March 2024",
		Category:  "Personal",
	})
	if err != nil {
		t.Fatalf("ListTransactions error: %v", err)
	}

	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if txs.lastQuery.Category != nil {
		t.Fatal("group labels must not be pushed to the store")
	}
}

func TestListTransactionsPushesCategoryToStore(t *testing.T) {
	txs := &fakeTransactionStore{txs: []models.Transaction{
		{ID: "a", Date: "2024-03-01T00:00:00.000Z", Category: "ETF"},
		{ID: "b", Date: "bad", Category: "ETF"},
		{ID: "c", Date: "2024-03-02T00:00:00.000Z", Category: "Food"},
	}}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	got, err := svc.ListTransactions(helpers.TestCtx(), "uid1", dto.ListTransactionsQuery{Category: "ETF"})
	if err != nil {
		t.Fatalf("ListTransactions error: %v", err)
	}
	if txs.lastQuery.Category == nil || *txs.lastQuery.Category != "ETF" {
		t.Fatalf("expected category query, got %+v", txs.lastQuery)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListTransactionsInvalidMonth(t *testing.T) {
	svc := newTestTransactionService(&fakeTransactionStore{}, &fakeCategoryStore{})

	_, err := svc.ListTransactions(helpers.TestCtx(), "uid1", dto.ListTransactionsQuery{MonthYear: "13/2024"})
	if _, ok := err.(*errs.ValidationError); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateTransactionKeepsSignAndRecomputesExclusion(t *testing.T) {
	txs := &fakeTransactionStore{txs: []models.Transaction{
		{ID: "t1", Amount: -200, Category: categories.Cash, Description: "Cash", Date: "2024-03-05T08:15:00.000Z", ExcludeFromSummary: true},
	}}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	got, err := svc.UpdateTransaction(helpers.TestCtx(), "uid1", "t1", dto.UpdateTransactionRequest{
		Amount:      helpers.Ptr(250.0),
		Category:    helpers.Ptr(categories.Name("Food")),
		Description: helpers.Ptr("  "),
		Date:        helpers.Ptr("2024-03-07"),
	})
	if err != nil {
		t.Fatalf("UpdateTransaction error: %v", err)
	}

	if got.Amount != -250 {
		t.Fatalf("amount mismatch: got %v", got.Amount)
	}
	if got.Category != "Food" || got.ExcludeFromSummary {
		t.Fatalf("category mismatch: %+v", got)
	}
	if got.Description != "Food" {
		t.Fatalf("description mismatch: got %q", got.Description)
	}
	if got.Date != "2024-03-07T08:15:00.000Z" {
		t.Fatalf("date mismatch: got %q", got.Date)
	}
	if txs.updated == nil || txs.updated.ID != "t1" {
		t.Fatal("expected store update")
	}
}

func TestUpdateTransactionTimeOnly(t *testing.T) {
	txs := &fakeTransactionStore{txs: []models.Transaction{
		{ID: "t1", Amount: 100, Category: "Job", Date: "2024-03-05T08:15:00.000Z"},
	}}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	got, err := svc.UpdateTransaction(helpers.TestCtx(), "uid1", "t1", dto.UpdateTransactionRequest{Time: helpers.Ptr("21:45")})
	if err != nil {
		t.Fatalf("UpdateTransaction error: %v", err)
	}
	if got.Date != "2024-03-05T21:45:00.000Z" {
		t.Fatalf("date mismatch: got %q", got.Date)
	}
	if got.Amount != 100 {
		t.Fatalf("amount mismatch: got %v", got.Amount)
	}
}

func TestUpdateTransactionValidation(t *testing.T) {
	base := []models.Transaction{{ID: "t1", Amount: -10, Category: "Food", Date: "2024-03-05T08:15:00.000Z"}}
	cases := map[string]dto.UpdateTransactionRequest{
		"zero amount":      {Amount: helpers.Ptr(0.0)},
		"unknown category": {Category: helpers.Ptr(categories.Name("Nope"))},
		"bad date":         {Date: helpers.Ptr("05/03/2024")},
		"bad time":         {Time: helpers.Ptr("9pm")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			txs := &fakeTransactionStore{txs: base}
			svc := newTestTransactionService(txs, &fakeCategoryStore{})

			_, err := svc.UpdateTransaction(helpers.TestCtx(), "uid1", "t1", req)
			if _, ok := err.(*errs.ValidationError); !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if txs.updated != nil {
				t.Fatal("store must not be updated")
			}
		})
	}
}

func TestUpdateTransactionToOtherAccountIsExcluded(t *testing.T) {
	txs := &fakeTransactionStore{txs: []models.Transaction{{ID: "t1", Amount: -10, Category: "Food", Date: "2024-03-05T08:15:00.000Z"}}}
	cats := &fakeCategoryStore{custom: []categories.Custom{{ID: "c1", Name: categories.OtherAccountName, IsOtherAccount: true}}}
	svc := newTestTransactionService(txs, cats)

	got, err := svc.UpdateTransaction(helpers.TestCtx(), "uid1", "t1", dto.UpdateTransactionRequest{Category: helpers.Ptr(categories.OtherAccountName)})
	if err != nil {
		t.Fatalf("UpdateTransaction error: %v", err)
	}
	if !got.ExcludeFromSummary {
		t.Fatal("expected other-account transaction to be excluded")
	}
}

func TestDeleteTransaction(t *testing.T) {
	txs := &fakeTransactionStore{txs: []models.Transaction{{ID: "t1"}}}
	svc := newTestTransactionService(txs, &fakeCategoryStore{})

	if err := svc.DeleteTransaction(helpers.TestCtx(), "uid1", "t1"); err != nil {
		t.Fatalf("DeleteTransaction error: %v", err)
	}
	if txs.deletedID != "t1" {
		t.Fatalf("deleted id mismatch: got %q", txs.deletedID)
	}

	err := svc.DeleteTransaction(helpers.TestCtx(), "uid1", "missing")
	if _, ok := err.(*errs.NotFoundError); !ok {
		t.Fatalf("expected not found, got %v", err)
	}
}
