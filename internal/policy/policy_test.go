package policy

import "testing"

// TestDefault_Evaluate はデフォルトポリシーのルート別判定を検証する。
func TestDefault_Evaluate(t *testing.T) {
	p := Default()

	tests := []struct {
		method string
		path   string
		want   Requirement
	}{
		// ヘルスチェックは全メソッド公開
		{"GET", "/api/health", RequirePublic},
		{"POST", "/api/health", RequirePublic},

		// サロン参照系は公開
		{"GET", "/api/salons", RequirePublic},
		{"GET", "/api/salons/abc-123", RequirePublic},
		{"GET", "/api/salons/abc-123/services", RequirePublic},

		// 施術メニュー参照系は公開
		{"GET", "/api/services", RequirePublic},
		{"GET", "/api/services/xyz", RequirePublic},

		// メトリクスは公開
		{"GET", "/metrics", RequirePublic},

		// 書き込み系は認証必須（GETルールはPOSTにマッチしない）
		{"POST", "/api/salons", RequireAuthenticated},
		{"POST", "/api/bookings", RequireAuthenticated},
		{"DELETE", "/api/salons/abc-123", RequireAuthenticated},

		// 認証必須ルート
		{"GET", "/api/me", RequireAuthenticated},
		{"GET", "/api/bookings/me", RequireAuthenticated},

		// 未知のパスはデフォルトで認証必須
		{"GET", "/api/unknown", RequireAuthenticated},
		{"GET", "/", RequireAuthenticated},

		// プレフィックスの途中一致はマッチしない
		{"GET", "/api/salonsX", RequireAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if got := p.Evaluate(tt.method, tt.path); got != tt.want {
				t.Errorf("Evaluate(%s, %s) = %v, want %v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}

// TestEvaluate_FirstMatchWins はルールが上から順に評価され、
// 最初にマッチしたルールが採用されることを検証する。
func TestEvaluate_FirstMatchWins(t *testing.T) {
	p := New([]Rule{
		{Method: "GET", Pattern: "/api/salons/**", Requirement: RequirePublic},
		{Method: "GET", Pattern: "/api/salons/secret", Requirement: RequireAuthenticated},
	})

	// 後段のルールは先にマッチした公開ルールに隠される
	if got := p.Evaluate("GET", "/api/salons/secret"); got != RequirePublic {
		t.Errorf("Evaluate() = %v, want RequirePublic (first match wins)", got)
	}
}

// TestEvaluate_EmptyPolicy はルールのないポリシーが常に認証必須を返すことを検証する。
func TestEvaluate_EmptyPolicy(t *testing.T) {
	p := New(nil)

	if got := p.Evaluate("GET", "/api/health"); got != RequireAuthenticated {
		t.Errorf("Evaluate() = %v, want RequireAuthenticated", got)
	}
}
