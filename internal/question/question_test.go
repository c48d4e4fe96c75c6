package question

import "testing"

func TestDefaultBankLookup(t *testing.T) {
	t.Parallel()
	bank := Default()

	if bank.Len() != 10 {
		t.Fatalf("Len: got %d, want 10", bank.Len())
	}

	q, ok := bank.ByID(1)
	if !ok {
		t.Fatal("ByID(1): question not found")
	}
	if q.Title != "Two Sum" {
		t.Errorf("ByID(1) title: got %q, want %q", q.Title, "Two Sum")
	}
	if q.FuncName != "twoSum" {
		t.Errorf("ByID(1) funcName: got %q, want %q", q.FuncName, "twoSum")
	}

	if _, ok := bank.ByID(99); ok {
		t.Error("ByID(99): expected not found")
	}
}

func TestRandomUsesInjectedSource(t *testing.T) {
	t.Parallel()
	bank := Default()

	// A fixed pick must make selection deterministic.
	q := bank.Random(func(n int) int {
		if n != bank.Len() {
			t.Errorf("pick called with n=%d, want %d", n, bank.Len())
		}
		return 3
	})
	if q.ID != 4 {
		t.Errorf("Random with pick=3: got id %d, want 4", q.ID)
	}
}

func TestEveryQuestionIsComplete(t *testing.T) {
	t.Parallel()
	for _, q := range Default().questions {
		if q.Title == "" || q.Description == "" || q.Template == "" || q.FuncName == "" {
			t.Errorf("question %d is missing fields: %+v", q.ID, q)
		}
		if len(q.Examples) == 0 {
			t.Errorf("question %d has no visible examples", q.ID)
		}
	}
}
