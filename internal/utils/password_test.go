package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("swordfish", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "swordfish") {
		t.Error("correct password did not verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password verified")
	}
	if VerifyPassword("not-a-bcrypt-hash", "swordfish") {
		t.Error("garbage hash verified")
	}
}

func TestHashPassword_ClampsInvalidCost(t *testing.T) {
	for _, bad := range []int{-1, 0, 99} {
		hash, err := HashPassword("pw", bad)
		if err != nil {
			t.Fatalf("HashPassword(cost=%d): %v", bad, err)
		}
		cost, err := bcrypt.Cost([]byte(hash))
		if err != nil {
			t.Fatalf("Cost: %v", err)
		}
		if cost != bcrypt.DefaultCost {
			t.Errorf("cost %d produced hash cost %d, want default %d", bad, cost, bcrypt.DefaultCost)
		}
	}
}
