package token

import (
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken は署名・有効期限・形式のいずれかが不正なトークンを表す。
var ErrInvalidToken = errors.New("invalid token")

// Verifier はベアラートークンを検証しクレームを取り出すインターフェース。
type Verifier interface {
	// Verify はトークンを検証し、subjectとrealm_accessクレームを返す。
	Verify(raw string) (*Claims, error)
}

// JWTVerifier はgolang-jwtによるJWT検証の実装。
// IdPのレルム公開鍵（RS256）または共有シークレット（HS256）のどちらかで検証する。
// 鍵種別と署名アルゴリズムの不一致は拒否する（アルゴリズム混同対策）。
type JWTVerifier struct {
	publicKey  *rsa.PublicKey
	hmacSecret []byte
}

// NewRS256Verifier はPEM形式のRSA公開鍵からJWTVerifierを生成する。
func NewRS256Verifier(publicKeyPEM []byte) (*JWTVerifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse idp public key: %w", err)
	}
	return &JWTVerifier{publicKey: key}, nil
}

// NewHS256Verifier は共有シークレットからJWTVerifierを生成する。
// ローカル開発およびテストでの利用を想定している。
func NewHS256Verifier(secret string) *JWTVerifier {
	return &JWTVerifier{hmacSecret: []byte(secret)}
}

// jwtClaims はJWTペイロードの内部表現。
type jwtClaims struct {
	RealmAccess map[string]any `json:"realm_access"`
	jwt.RegisteredClaims
}

// Verify はトークンを検証し、subjectとrealm_accessクレームを返す。
func (v *JWTVerifier) Verify(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &jwtClaims{}, func(t *jwt.Token) (any, error) {
		switch t.Method.(type) {
		case *jwt.SigningMethodRSA:
			if v.publicKey == nil {
				return nil, ErrInvalidToken
			}
			return v.publicKey, nil
		case *jwt.SigningMethodHMAC:
			if len(v.hmacSecret) == 0 {
				return nil, ErrInvalidToken
			}
			return v.hmacSecret, nil
		default:
			return nil, ErrInvalidToken
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*jwtClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject claim", ErrInvalidToken)
	}

	return &Claims{
		Subject:     claims.Subject,
		RealmAccess: claims.RealmAccess,
	}, nil
}
