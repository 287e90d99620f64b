package helpers

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("perihelion")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "perihelion" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "perihelion") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "aphelion") {
		t.Error("wrong password accepted")
	}
	if CheckPassword("not-a-bcrypt-hash", "perihelion") {
		t.Error("garbage hash accepted")
	}
}
