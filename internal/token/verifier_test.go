package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

// signHS256 はテスト用のHS256署名トークンを生成する。
func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return raw
}

// TestJWTVerifier_Verify_Success は有効なトークンからsubjectと
// realm_accessクレームが取り出せることを検証する。
func TestJWTVerifier_Verify_Success(t *testing.T) {
	v := NewHS256Verifier(testSecret)

	raw := signHS256(t, jwt.MapClaims{
		"sub": "sub-123",
		"exp": time.Now().Add(time.Hour).Unix(),
		"realm_access": map[string]any{
			"roles": []any{"client"},
		},
	})

	claims, err := v.Verify(raw)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "sub-123" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "sub-123")
	}

	auths := DeriveAuthorities(*claims)
	if len(auths) != 1 || auths[0] != "ROLE_CLIENT" {
		t.Errorf("authorities = %v, want [ROLE_CLIENT]", auths)
	}
}

// TestJWTVerifier_Verify_Expired は期限切れトークンが拒否されることを検証する。
func TestJWTVerifier_Verify_Expired(t *testing.T) {
	v := NewHS256Verifier(testSecret)

	raw := signHS256(t, jwt.MapClaims{
		"sub": "sub-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestJWTVerifier_Verify_BadSignature は署名不正のトークンが拒否されることを検証する。
func TestJWTVerifier_Verify_BadSignature(t *testing.T) {
	v := NewHS256Verifier("other-secret")

	raw := signHS256(t, jwt.MapClaims{
		"sub": "sub-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestJWTVerifier_Verify_MissingSubject はsubjectクレームのないトークンが
// 拒否されることを検証する。
func TestJWTVerifier_Verify_MissingSubject(t *testing.T) {
	v := NewHS256Verifier(testSecret)

	raw := signHS256(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestJWTVerifier_Verify_AlgorithmMismatch はRS256検証器がHS256トークンを
// 拒否することを検証する（アルゴリズム混同対策）。
func TestJWTVerifier_Verify_AlgorithmMismatch(t *testing.T) {
	// 公開鍵のないRS256検証器はHMACトークンを受け付けない
	v := &JWTVerifier{}

	raw := signHS256(t, jwt.MapClaims{
		"sub": "sub-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	if _, err := v.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

// TestJWTVerifier_Verify_Garbage はJWT形式でない文字列が拒否されることを検証する。
func TestJWTVerifier_Verify_Garbage(t *testing.T) {
	v := NewHS256Verifier(testSecret)

	if _, err := v.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
