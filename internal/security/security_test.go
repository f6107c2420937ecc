package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// ─── Passwords ──────────────────────────────────────────────────────────────

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in plaintext")
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong password", hash) {
		t.Error("wrong password accepted")
	}
}

// ─── Tokens ─────────────────────────────────────────────────────────────────

func TestToken_IssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %s", userID)
	}
}

func TestToken_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, _ := issuer.Issue("user-123")
	if _, err := other.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestToken_ExpiredRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Hour)

	token, _ := issuer.Issue("user-123")
	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestToken_GarbageRejected(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	if _, err := issuer.Verify("not.a.token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

// ─── Telegram handshake ─────────────────────────────────────────────────────

// signInitData builds a valid init_data string the way Telegram does.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	pairs := make([]string, 0, len(fields))
	values := url.Values{}
	for k, v := range fields {
		pairs = append(pairs, k+"="+v)
		values.Set(k, v)
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(checkString))
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))

	return values.Encode()
}

func TestTelegram_ValidSignature(t *testing.T) {
	initData := signInitData(t, "bot-token-1", map[string]string{
		"auth_date": "1717000000",
		"query_id":  "AAE123",
		"user":      `{"id":42,"first_name":"Ann"}`,
	})

	if err := VerifyTelegramInitData(initData, "bot-token-1"); err != nil {
		t.Fatalf("valid init data rejected: %v", err)
	}
}

func TestTelegram_WrongBotToken(t *testing.T) {
	initData := signInitData(t, "bot-token-1", map[string]string{
		"auth_date": "1717000000",
	})

	err := VerifyTelegramInitData(initData, "bot-token-2")
	if !errors.Is(err, domain.ErrTelegramSignature) {
		t.Fatalf("expected ErrTelegramSignature, got %v", err)
	}
}

func TestTelegram_TamperedData(t *testing.T) {
	initData := signInitData(t, "bot-token-1", map[string]string{
		"auth_date": "1717000000",
		"user":      `{"id":42}`,
	})
	tampered := strings.Replace(initData, "42", "43", 1)

	err := VerifyTelegramInitData(tampered, "bot-token-1")
	if !errors.Is(err, domain.ErrTelegramSignature) {
		t.Fatalf("expected ErrTelegramSignature, got %v", err)
	}
}

func TestTelegram_MissingHash(t *testing.T) {
	err := VerifyTelegramInitData("auth_date=1717000000", "bot-token-1")
	if !errors.Is(err, domain.ErrTelegramSignature) {
		t.Fatalf("expected ErrTelegramSignature, got %v", err)
	}
}
