package credential

import "testing"

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("s3nh4-forte")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if string(digest) == "s3nh4-forte" {
		t.Fatalf("digest must not equal the plaintext")
	}
	if !Verify("s3nh4-forte", digest) {
		t.Fatalf("expected password to verify against its own digest")
	}
	if Verify("wrong", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := Hash(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := Hash("mesma-senha")
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	b, err := Hash("mesma-senha")
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if string(a) == string(b) {
		t.Fatalf("two digests of the same password should differ")
	}
}
