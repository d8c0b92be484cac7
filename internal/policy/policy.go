// Package policy はルート単位のアクセス要件を宣言的に定義する。
//
// ポリシーはルールの順序付きリストとして表現し、上から順に評価して
// 最初にマッチしたルールの要件を採用する。どのルールにもマッチしない場合の
// デフォルトは「認証必須」である。ルールをデータとして持つことで、
// 制御フローに触れずにルールの追加・テストができる。
package policy

import "strings"

// Requirement はルートのアクセス要件を表す。
type Requirement int

const (
	// RequireAuthenticated は有効なIdPトークンを必須とする要件。デフォルト。
	RequireAuthenticated Requirement = iota
	// RequirePublic は認証不要でアクセスできる要件。
	RequirePublic
)

// Rule は1つのアクセスルールを表す。
// Methodが空文字の場合は全メソッドにマッチする。
// Patternは完全一致、または末尾が"/**"の場合はプレフィックス一致で評価する。
type Rule struct {
	Method      string
	Pattern     string
	Requirement Requirement
}

// Policy は順序付きルールリストによるアクセスポリシー。
type Policy struct {
	rules []Rule
}

// New は指定ルールのPolicyを生成する。
func New(rules []Rule) *Policy {
	return &Policy{rules: rules}
}

// Default は本サービスのデフォルトアクセスポリシーを返す。
//
//   - /api/health: 全メソッド公開
//   - GET /api/salons/**: 公開（一覧・詳細・サロン配下の施術メニュー）
//   - GET /api/services/**: 公開（施術メニュー一覧。現時点でマッチするルートは
//     マウントされていないが、元ポリシーどおり保持する）
//   - GET /metrics: 公開（Prometheusスクレイプ）
//   - それ以外: 認証必須
func Default() *Policy {
	return New([]Rule{
		{Method: "", Pattern: "/api/health", Requirement: RequirePublic},
		{Method: "GET", Pattern: "/api/salons/**", Requirement: RequirePublic},
		{Method: "GET", Pattern: "/api/services/**", Requirement: RequirePublic},
		{Method: "GET", Pattern: "/metrics", Requirement: RequirePublic},
	})
}

// Evaluate は(method, path)に対するアクセス要件を決定する。
// 最初にマッチしたルールが勝ち、マッチしない場合はRequireAuthenticatedを返す。
// 判定は1リクエストにつき1回だけ行われる前提であり、再試行はない。
func (p *Policy) Evaluate(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule.Requirement
		}
	}
	return RequireAuthenticated
}

// matchPattern はパスパターンの一致を判定する。
// 末尾"/**"のパターンはそのプレフィックス自身とその配下のすべてにマッチする。
func matchPattern(pattern, path string) bool {
	if base, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == base || strings.HasPrefix(path, base+"/")
	}
	return path == pattern
}
