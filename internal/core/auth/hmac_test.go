package auth

import (
	"strings"
	"testing"
)

const (
	testSecretID   = "0123456789abcdef0123456789abcdef"
	testRandomData = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func TestParseAdminKey(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		key := FormatAdminKey(testSecretID, testRandomData)
		secretID, randomData, err := ParseAdminKey(key)
		if err != nil {
			t.Fatalf("ParseAdminKey failed: %v", err)
		}
		if secretID != testSecretID {
			t.Errorf("unexpected secret_id: %s", secretID)
		}
		if randomData != testRandomData {
			t.Errorf("unexpected random_data: %s", randomData)
		}
	})

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"wrong prefix", "tk-v1-" + testSecretID + "-" + testRandomData},
		{"wrong version", "mk-v2-" + testSecretID + "-" + testRandomData},
		{"short secret_id", "mk-v1-abc-" + testRandomData},
		{"short random_data", "mk-v1-" + testSecretID + "-abc"},
		{"uppercase hex", "mk-v1-" + strings.ToUpper(testSecretID) + "-" + testRandomData},
		{"too many parts", "mk-v1-x-" + testSecretID + "-" + testRandomData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseAdminKey(tt.key); err != ErrInvalidKeyFormat {
				t.Errorf("ParseAdminKey(%q) error = %v, want ErrInvalidKeyFormat", tt.key, err)
			}
		})
	}
}

func TestComputeHMAC(t *testing.T) {
	secret := []byte("test-secret-at-least-32-bytes-long!!")
	key := FormatAdminKey(testSecretID, testRandomData)

	h1 := ComputeHMAC(secret, key)
	h2 := ComputeHMAC(secret, key)
	if !VerifyHMAC(h1, h2) {
		t.Error("identical inputs produced different HMACs")
	}
	if len(h1) != 32 {
		t.Errorf("HMAC length = %d, want 32", len(h1))
	}

	other := ComputeHMAC([]byte("another-secret-at-least-32-bytes!!!!"), key)
	if VerifyHMAC(h1, other) {
		t.Error("different secrets produced matching HMACs")
	}
}

func TestGenerateAdminKey(t *testing.T) {
	key, err := GenerateAdminKey(testSecretID)
	if err != nil {
		t.Fatalf("GenerateAdminKey failed: %v", err)
	}

	secretID, randomData, err := ParseAdminKey(key)
	if err != nil {
		t.Fatalf("generated key failed to parse: %v", err)
	}
	if secretID != testSecretID {
		t.Errorf("unexpected secret_id: %s", secretID)
	}
	if len(randomData) != 64 {
		t.Errorf("random_data length = %d, want 64", len(randomData))
	}

	other, err := GenerateAdminKey(testSecretID)
	if err != nil {
		t.Fatalf("GenerateAdminKey failed: %v", err)
	}
	if key == other {
		t.Error("two generated keys are identical")
	}
}
