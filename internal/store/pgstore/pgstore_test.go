package pgstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

func TestWhereOf(t *testing.T) {
	testCases := []struct {
		name      string
		filter    store.Filter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "all",
			filter:    store.All(),
			wantWhere: "collection = $1",
			wantArgs:  []any{"orders"},
		},
		{
			name:      "by id",
			filter:    store.ByID("abc"),
			wantWhere: "collection = $1 AND id = ANY($2)",
			wantArgs:  []any{"orders", []string{"abc"}},
		},
		{
			name:      "empty id set",
			filter:    store.ByIDs(nil),
			wantWhere: "collection = $1 AND id = ANY($2)",
			wantArgs:  []any{"orders", []string{}},
		},
		{
			name:      "field equality",
			filter:    store.Eq("user_uid", "u1"),
			wantWhere: "collection = $1 AND doc->>$2 = $3",
			wantArgs:  []any{"orders", "user_uid", "u1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := whereOf("orders", tc.filter)
			assert.Equal(t, tc.wantWhere, where)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestOpen_RequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	assert.Error(t, err)
}
