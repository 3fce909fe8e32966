package auth

import (
	"testing"
	"time"
)

func TestMintAndParseTokens(t *testing.T) {
	pair, err := MintTokens(42, "dan@example.com", "secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}

	claims, err := ParseClaims(pair.AccessToken, "secret")
	if err != nil {
		t.Fatalf("ParseClaims() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "dan@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseClaims(pair.AccessToken, "other-secret"); err == nil {
		t.Error("ParseClaims() accepted wrong secret")
	}
}

func TestParseClaimsExpired(t *testing.T) {
	pair, err := MintTokens(42, "dan@example.com", "secret", -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}
	if _, err := ParseClaims(pair.AccessToken, "secret"); err == nil {
		t.Error("ParseClaims() accepted expired token")
	}
}

// Contractor and portal tokens are separate domains. Even with the
// secrets swapped, one side's token must not authenticate the other.
func TestTokenDomainsDoNotCross(t *testing.T) {
	portalTok, err := MintPortalToken(7, 10, "meyer@example.com", "portal-secret", time.Hour)
	if err != nil {
		t.Fatalf("MintPortalToken() error = %v", err)
	}

	if _, err := ParseClaims(portalTok, "contractor-secret"); err == nil {
		t.Error("contractor parser accepted portal token")
	}

	pair, err := MintTokens(42, "dan@example.com", "contractor-secret", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("MintTokens() error = %v", err)
	}
	if _, err := ParsePortalClaims(pair.AccessToken, "portal-secret"); err == nil {
		t.Error("portal parser accepted contractor token")
	}
}

func TestParsePortalClaims(t *testing.T) {
	tok, err := MintPortalToken(7, 10, "meyer@example.com", "portal-secret", time.Hour)
	if err != nil {
		t.Fatalf("MintPortalToken() error = %v", err)
	}

	claims, err := ParsePortalClaims(tok, "portal-secret")
	if err != nil {
		t.Fatalf("ParsePortalClaims() error = %v", err)
	}
	if claims.PortalUserID != 7 || claims.ClientID != 10 {
		t.Errorf("claims = %+v", claims)
	}
}
