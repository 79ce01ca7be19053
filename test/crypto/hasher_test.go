package crypto

import (
	"strings"
	"testing"

	commoncrypto "github.com/finalstore/backend/internal/common/crypto"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := commoncrypto.NewBcryptHasher(4)

	hash, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := hasher.Compare(hash, "password123"); err != nil {
		t.Errorf("expected matching password to verify, got %v", err)
	}
	if err := hasher.Compare(hash, "wrong-password"); err == nil {
		t.Error("expected wrong password to fail verification")
	}
}

func TestBcryptHasher_DistinctSalts(t *testing.T) {
	hasher := commoncrypto.NewBcryptHasher(4)

	first, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if first == second {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestBcryptHasher_OutOfRangeCostClamped(t *testing.T) {
	hasher := commoncrypto.NewBcryptHasher(99)

	hash, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("expected out-of-range cost to fall back to the default, got %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("unexpected hash format: %s", hash)
	}
}

func TestUUIDGenerator_DistinctIDs(t *testing.T) {
	gen := commoncrypto.NewUUIDGenerator()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := gen.NewID()
		if err != nil {
			t.Fatalf("NewID failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
