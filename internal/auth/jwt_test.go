package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("expected tampered signature to be rejected")
	}
}
