package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_OmitsNilValues(t *testing.T) {
	var unread *bool
	var limit *int

	q := Query{
		Param("unread", unread),
		Param("limit", limit),
		Param("raw", nil),
		Param("page", 2),
	}

	assert.Equal(t, "page=2", q.Encode())
}

func TestQuery_KeepsZeroValues(t *testing.T) {
	q := Query{
		Param("count", 0),
		Param("flag", false),
		Param("name", ""),
		Param("ratio", 0.0),
		Param("ptr", Ptr(0)),
	}

	assert.Equal(t, "count=0&flag=false&name=&ratio=0&ptr=0", q.Encode())
}

func TestQuery_PercentEncodes(t *testing.T) {
	q := Query{
		Param("search term", "a b&c=d/é"),
		Param("marks", "it's (ok)!*~"),
		Param("confidence", 0.95),
	}

	assert.Equal(t, "search%20term=a%20b%26c%3Dd%2F%C3%A9&marks=it's%20(ok)!*~&confidence=0.95", q.Encode())
}

func TestQuery_PreservesOrder(t *testing.T) {
	q := Query{Param("unread", Ptr(true)), Param("limit", Ptr(5))}
	assert.Equal(t, "unread=true&limit=5", q.Encode())
}

func TestAppendQuery(t *testing.T) {
	q := Query{Param("limit", 30)}

	assert.Equal(t, "/api/x?limit=30", AppendQuery("/api/x", q))
	assert.Equal(t, "/api/x?a=1&limit=30", AppendQuery("/api/x?a=1", q))
	assert.Equal(t, "/api/x", AppendQuery("/api/x", Query{Param("gone", nil)}))
	assert.Equal(t, "/api/x", AppendQuery("/api/x", nil))
}

func TestPathSegment(t *testing.T) {
	assert.Equal(t, "plain-id_1", PathSegment("plain-id_1"))
	assert.Equal(t, "a%2Fb%3Fc%23d", PathSegment("a/b?c#d"))
	assert.Equal(t, "with%20space", PathSegment("with space"))
}
