package sqldb

import "testing"

func TestReplaceStaticPlaceholders(t *testing.T) {
	cases := []struct {
		in     string
		prefix byte
		want   string
	}{
		{"SELECT * FROM t WHERE a = ? AND b = ?", '$', "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"INSERT INTO t VALUES (?, ?, ?)", '$', "INSERT INTO t VALUES ($1, $2, $3)"},
		{"WHERE id IN (??) AND a = ?", '$', "WHERE id IN (??) AND a = $1"},
		{"SELECT ?", '?', "SELECT ?"},
		{"SELECT ?", 0, "SELECT ?"},
		{"SELECT 1", '$', "SELECT 1"},
	}
	for _, c := range cases {
		if got := ReplaceStaticPlaceholders(c.in, c.prefix); got != c.want {
			t.Errorf("ReplaceStaticPlaceholders(%q, %q) = %q, want %q", c.in, c.prefix, got, c.want)
		}
	}
}
