package filter_test

import (
	"testing"

	"github.com/tirasundara/ledger-service/internal/domain"
	"github.com/tirasundara/ledger-service/internal/filter"
)

func TestChain_Apply(t *testing.T) {
	txns := []domain.Transaction{
		newTx(t, domain.Deposit, domain.USD, "2025-01-17T09:00:00", 5),
		newTx(t, domain.Withdraw, domain.PLN, "2025-01-15T09:00:00", 2),
		newTx(t, domain.Deposit, domain.PLN, "2025-01-15T08:00:00", 1),
		newTx(t, domain.Deposit, domain.EUR, "2025-01-16T09:00:00", 4),
		newTx(t, domain.Deposit, domain.EUR, "2025-01-15T09:00:00", 3), // Same time as seq 2
	}

	depositType := domain.Deposit
	result := filter.FromQuery(domain.HistoryQuery{Type: &depositType}).Apply(txns)

	if len(result) != 4 {
		t.Fatalf("Expected 4 deposits, got %d", len(result))
	}

	expectedSeq := []uint64{1, 3, 4, 5}
	for i, tx := range result {
		if tx.Type != domain.Deposit {
			t.Errorf("Expected only DEPOSIT transactions, got %s", tx.Type)
		}
		if tx.Seq != expectedSeq[i] {
			t.Errorf("Expected transaction %d to have seq %d, got %d", i, expectedSeq[i], tx.Seq)
		}
	}

	// Input order is untouched
	if txns[0].Seq != 5 {
		t.Errorf("Expected input slice to be unchanged")
	}
}

func TestChain_ApplyDateAndType(t *testing.T) {
	txns := []domain.Transaction{
		newTx(t, domain.Send, domain.PLN, "2025-01-14T09:00:00", 1),
		newTx(t, domain.Send, domain.PLN, "2025-01-15T09:00:00", 2),
		newTx(t, domain.Receive, domain.PLN, "2025-01-15T10:00:00", 3),
		newTx(t, domain.Send, domain.PLN, "2025-01-16T09:00:00", 4),
	}

	start := parseTime(t, "2025-01-15T00:00:00")
	end := parseTime(t, "2025-01-16T09:00:00")
	sendType := domain.Send

	result := filter.FromQuery(domain.HistoryQuery{Start: &start, End: &end, Type: &sendType}).Apply(txns)

	if len(result) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(result))
	}
	if result[0].Seq != 2 || result[1].Seq != 4 {
		t.Errorf("Expected seq 2 and 4, got %d and %d", result[0].Seq, result[1].Seq)
	}
}

func TestChain_EmptyKeepsEverything(t *testing.T) {
	txns := []domain.Transaction{
		newTx(t, domain.Deposit, domain.PLN, "2025-01-16T09:00:00", 2),
		newTx(t, domain.Withdraw, domain.PLN, "2025-01-15T09:00:00", 1),
	}

	result := filter.NewChain().Apply(txns)

	if len(result) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(result))
	}
	if result[0].Seq != 1 {
		t.Errorf("Expected chronological order, got seq %d first", result[0].Seq)
	}
}
