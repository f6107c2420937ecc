package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"

	"github.com/nosmoke-health/nosmoke/internal/domain"
)

// VerifyTelegramInitData validates a Telegram Mini App init_data string
// against the bot token, per the Telegram WebApp scheme: the secret key
// is HMAC-SHA256("WebAppData", botToken), and the hash field must equal
// HMAC-SHA256(secret, data-check-string) where the data-check-string is
// the remaining key=value pairs sorted and joined with newlines.
func VerifyTelegramInitData(initData, botToken string) error {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return domain.ErrTelegramSignature
	}

	received := values.Get("hash")
	if received == "" {
		return domain.ErrTelegramSignature
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(received)) {
		return domain.ErrTelegramSignature
	}
	return nil
}
