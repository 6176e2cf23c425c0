package ordersync

import "strings"

// Platform identifies the marketplace an order originates from.
type Platform string

const (
	// PlatformShopee represents Shopee
	PlatformShopee Platform = "SHOPEE"
	// PlatformLazada represents Lazada
	PlatformLazada Platform = "LAZADA"
	// PlatformTiktok represents TikTok Shop
	PlatformTiktok Platform = "TIKTOK"
	// PlatformTokopedia represents Tokopedia
	PlatformTokopedia Platform = "TOKOPEDIA"
)

// IsValid returns true if the platform is in the allowed set
func (p Platform) IsValid() bool {
	switch p {
	case PlatformShopee, PlatformLazada, PlatformTiktok, PlatformTokopedia:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// AllPlatforms returns the fixed set of recognized platforms.
func AllPlatforms() []Platform {
	return []Platform{PlatformShopee, PlatformLazada, PlatformTiktok, PlatformTokopedia}
}

// NormalizePlatform trims and uppercases a raw platform string and
// validates it against the allowed set. Unrecognized values are rejected,
// never passed through.
func NormalizePlatform(raw string) (Platform, error) {
	p := Platform(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", ErrUnknownPlatform
	}
	return p, nil
}
