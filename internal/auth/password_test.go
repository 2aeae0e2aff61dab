package auth

import "testing"

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	h2, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h1 == h2 {
		t.Error("expected distinct digests for the same plaintext")
	}
	if !CheckPassword("hunter2", h1) || !CheckPassword("hunter2", h2) {
		t.Error("digests do not verify against original plaintext")
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	h, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if CheckPassword("battery staple", h) {
		t.Error("wrong password verified")
	}
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-digest") {
		t.Error("malformed digest verified")
	}
	if CheckPassword("anything", "") {
		t.Error("empty digest verified")
	}
}
