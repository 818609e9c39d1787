// internal/pkg/telegram/initdata.go
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MaxInitDataAge bounds how old a Mini App login payload may be before it is
// rejected as a replay.
const MaxInitDataAge = 24 * time.Hour

// User is the Telegram account embedded in the Mini App initData.
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}

// VerifyInitData validates the signature of a Telegram WebApp initData
// string against the bot token and returns the embedded user.
//
// Per the Bot API contract: secret = HMAC_SHA256(bot_token, key="WebAppData"),
// expected hash = hex(HMAC_SHA256(data_check_string, secret)) where the data
// check string is all fields except "hash", sorted, joined with newlines.
func VerifyInitData(initData, botToken string, now time.Time) (*User, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("init data is not a query string: %w", err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, fmt.Errorf("init data has no hash")
	}

	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	secret := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(checkString))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(wantHash), []byte(gotHash)) {
		return nil, fmt.Errorf("init data signature mismatch")
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid auth_date: %w", err)
	}
	if now.Sub(time.Unix(authDate, 0)) > MaxInitDataAge {
		return nil, fmt.Errorf("init data expired")
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, fmt.Errorf("init data has no user")
	}

	var user User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("invalid user payload: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("user payload has no id")
	}
	return &user, nil
}
