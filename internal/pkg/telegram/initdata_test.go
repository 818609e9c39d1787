package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"
)

const testBotToken = "1234567890:AAFakeTokenForTests"

// sign builds a valid initData string the way the Telegram client would.
func sign(t *testing.T, fields map[string]string) string {
	t.Helper()

	pairs := make([]string, 0, len(fields))
	for k, v := range fields {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	q := url.Values{}
	for k, v := range fields {
		q.Set(k, v)
	}
	q.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return q.Encode()
}

func TestVerifyInitDataAcceptsValidSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	initData := sign(t, map[string]string{
		"auth_date": fmt.Sprintf("%d", now.Add(-time.Minute).Unix()),
		"user":      `{"id":123456789,"first_name":"Ivan","username":"ivan","language_code":"ru"}`,
		"query_id":  "AAE1",
	})

	user, err := VerifyInitData(initData, testBotToken, now)
	if err != nil {
		t.Fatalf("valid init data rejected: %v", err)
	}
	if user.ID != 123456789 || user.Username != "ivan" {
		t.Fatalf("user not decoded: %+v", user)
	}
}

func TestVerifyInitDataRejectsTampering(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	initData := sign(t, map[string]string{
		"auth_date": fmt.Sprintf("%d", now.Unix()),
		"user":      `{"id":123456789,"first_name":"Ivan"}`,
	})

	tampered := strings.Replace(initData, "123456789", "987654321", 1)
	if _, err := VerifyInitData(tampered, testBotToken, now); err == nil {
		t.Fatalf("tampered init data accepted")
	}

	if _, err := VerifyInitData(initData, "other:token", now); err == nil {
		t.Fatalf("init data accepted with wrong bot token")
	}
}

func TestVerifyInitDataRejectsStaleAuthDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	initData := sign(t, map[string]string{
		"auth_date": fmt.Sprintf("%d", now.Add(-25*time.Hour).Unix()),
		"user":      `{"id":1,"first_name":"Ivan"}`,
	})

	if _, err := VerifyInitData(initData, testBotToken, now); err == nil {
		t.Fatalf("stale init data accepted")
	}
}

func TestVerifyInitDataRejectsMissingHash(t *testing.T) {
	if _, err := VerifyInitData("auth_date=1&user=%7B%22id%22%3A1%7D", testBotToken, time.Now()); err == nil {
		t.Fatalf("init data without hash accepted")
	}
}
