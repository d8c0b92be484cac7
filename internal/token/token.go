// Package token は外部IdPのベアラートークンの検証と、
// トークンクレームからローカル権限（Authority）への変換を提供する。
package token

import (
	"sort"
	"strings"
)

// AuthorityPrefix はロール名から権限名を導出する際の固定プレフィックス。
const AuthorityPrefix = "ROLE_"

// Authority はトークンのロールクレームから導出されるローカル権限マーカー。
type Authority string

// Authorities は権限の集合。重複なし・辞書順ソート済みで保持する。
type Authorities []Authority

// Has は指定された権限を含むかを返す。
// ルート単位の権限チェックの拡張ポイントであり、現時点で参照するルートはない。
func (a Authorities) Has(target Authority) bool {
	for _, auth := range a {
		if auth == target {
			return true
		}
	}
	return false
}

// Claims は検証済みトークンのクレームを表す。
// RealmAccessはIdPのネストしたロールクレーム（realm_access）をそのまま保持する。
type Claims struct {
	Subject     string
	RealmAccess map[string]any
}

// DeriveAuthorities はトークンのrealm_access.rolesクレームから権限集合を導出する。
//
// realm_accessが存在しない場合、またはrolesがリストでない場合は空集合を返す。
// 空集合は「追加権限なし（最小権限）」を意味し、エラーにはしない。
// 各ロール名は大文字化され、ROLE_プレフィックスが付与される。
// 純粋関数であり、同じクレームに対して常に同じ結果を返す。
func DeriveAuthorities(claims Claims) Authorities {
	if claims.RealmAccess == nil {
		return nil
	}

	rolesVal, ok := claims.RealmAccess["roles"]
	if !ok {
		return nil
	}

	// rolesがリスト形式でない場合（文字列等）は権限なしに縮退させる
	roles, ok := rolesVal.([]any)
	if !ok {
		return nil
	}

	seen := make(map[Authority]struct{}, len(roles))
	var out Authorities
	for _, r := range roles {
		name, ok := r.(string)
		if !ok || name == "" {
			continue
		}
		auth := Authority(AuthorityPrefix + strings.ToUpper(name))
		if _, dup := seen[auth]; dup {
			continue
		}
		seen[auth] = struct{}{}
		out = append(out, auth)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
