package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

func TestJWTServiceImpl_Mint(t *testing.T) {
	svc := NewJWTService("testsecret", "med-o-sys")
	user := &domain.User{ID: 7, FirstName: "Ram", LastName: "Shrestha", Email: "ram@example.com"}

	tokenStr, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return []byte("testsecret"), nil
	})
	if err != nil {
		t.Fatalf("failed to parse minted token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["email"] != "ram@example.com" {
		t.Errorf("unexpected email claim %v", claims["email"])
	}
	if claims["name"] != "Ram Shrestha" {
		t.Errorf("unexpected name claim %v", claims["name"])
	}
	if claims["iss"] != "med-o-sys" {
		t.Errorf("unexpected issuer %v", claims["iss"])
	}
	if _, hasExp := claims["exp"]; hasExp {
		t.Error("the stored token must not expire on its own")
	}
}

func TestJWTServiceImpl_MintDistinctTokens(t *testing.T) {
	svc := NewJWTService("testsecret", "med-o-sys")
	user := &domain.User{ID: 7, Email: "ram@example.com"}

	a, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	b, err := svc.Mint(user)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if a == b {
		t.Error("expected distinct tokens for repeated mints")
	}
}
