package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	passwords := NewPasswordServiceForTest(bcrypt.MinCost)

	hash, err := passwords.Hash("senha-super-secreta")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "senha-super-secreta" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := passwords.Verify(hash, "senha-super-secreta"); err != nil {
		t.Errorf("Verify with correct senha: %v", err)
	}
	if err := passwords.Verify(hash, "senha-errada"); err == nil {
		t.Error("Verify with wrong senha should fail")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	passwords := NewPasswordServiceForTest(bcrypt.MinCost)

	first, err := passwords.Hash("mesma-senha")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := passwords.Hash("mesma-senha")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same senha should differ (random salt)")
	}
}

func TestPasswordHashRejectsOversizedInput(t *testing.T) {
	passwords := NewPasswordServiceForTest(bcrypt.MinCost)

	if _, err := passwords.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("senha over 72 bytes should be rejected, not truncated")
	}
}
