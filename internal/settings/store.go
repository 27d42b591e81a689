// Package settings holds the site-wide configuration that admins edit at
// runtime: contact numbers, mobile-money merchant codes, currency and
// language. One cached snapshot per process; reads never hit the database.
package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Solvent24/odette-market/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	KeyPhoneNumber     = "phone_number"
	KeyWhatsappNumber  = "whatsapp_number"
	KeyMTNMomoCode     = "mtn_momo_code"
	KeyAirtelMoneyCode = "airtel_money_code"
	KeyEmergencyPhone  = "emergency_phone"
	KeyCurrency        = "currency"
	KeyCurrencySymbol  = "currency_symbol"
	KeyLanguage        = "language"
)

type SiteSettings struct {
	PhoneNumber     string `json:"phone_number"`
	WhatsappNumber  string `json:"whatsapp_number"`
	MTNMomoCode     string `json:"mtn_momo_code"`
	AirtelMoneyCode string `json:"airtel_money_code"`
	EmergencyPhone  string `json:"emergency_phone"`
	Currency        string `json:"currency"`
	CurrencySymbol  string `json:"currency_symbol"`
	Language        string `json:"language"`
}

func Defaults() SiteSettings {
	return SiteSettings{
		PhoneNumber:     "0783308948",
		WhatsappNumber:  "+250783308948",
		MTNMomoCode:     "0783308948",
		AirtelMoneyCode: "0783308948",
		EmergencyPhone:  "0783308948",
		Currency:        "RWF",
		CurrencySymbol:  "RWF",
		Language:        "rw",
	}
}

type Store struct {
	repo repository.SiteSettingRepository

	mu      sync.RWMutex
	current SiteSettings
}

func NewStore(repo repository.SiteSettingRepository) *Store {
	return &Store{
		repo:    repo,
		current: Defaults(),
	}
}

// Load fetches every settings row and rebuilds the snapshot; missing keys
// keep their defaults. Calling Load again is the reload contract.
func (s *Store) Load(ctx context.Context) error {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	next := Defaults()
	for _, row := range rows {
		applyKey(&next, row.SettingKey, row.SettingValue)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return nil
}

func (s *Store) Settings() SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set writes through to the store first; the cache only changes after the
// write succeeds, so a failed write leaves reads consistent.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	if !knownKey(key) {
		return fmt.Errorf("unknown setting key %q", key)
	}

	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return err
	}

	s.mu.Lock()
	applyKey(&s.current, key, value)
	s.mu.Unlock()
	return nil
}

// FormatPrice renders "{symbol} {amount}" with thousands grouping,
// e.g. "RWF 32,500".
func (s *Store) FormatPrice(amount decimal.Decimal) string {
	return s.Settings().CurrencySymbol + " " + groupDigits(amount)
}

func knownKey(key string) bool {
	switch key {
	case KeyPhoneNumber, KeyWhatsappNumber, KeyMTNMomoCode, KeyAirtelMoneyCode,
		KeyEmergencyPhone, KeyCurrency, KeyCurrencySymbol, KeyLanguage:
		return true
	}
	return false
}

func applyKey(s *SiteSettings, key string, value string) {
	switch key {
	case KeyPhoneNumber:
		s.PhoneNumber = value
	case KeyWhatsappNumber:
		s.WhatsappNumber = value
	case KeyMTNMomoCode:
		s.MTNMomoCode = value
	case KeyAirtelMoneyCode:
		s.AirtelMoneyCode = value
	case KeyEmergencyPhone:
		s.EmergencyPhone = value
	case KeyCurrency:
		s.Currency = value
	case KeyCurrencySymbol:
		s.CurrencySymbol = value
	case KeyLanguage:
		s.Language = value
	}
}

func groupDigits(amount decimal.Decimal) string {
	str := amount.String()

	neg := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")

	intPart := str
	fracPart := ""
	if i := strings.IndexByte(str, '.'); i >= 0 {
		intPart, fracPart = str[:i], str[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
