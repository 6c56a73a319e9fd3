package database

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_DescribeTable(t *testing.T) {
	var calls atomic.Int32
	observer := &recordingObserver{}
	p := newTestProvider(t, fakeOpener(&calls, 0), WithQueryObserver(observer))

	info, err := p.DescribeTable(context.Background(), "projected_contracts")
	require.NoError(t, err)

	assert.True(t, info.Exists)
	assert.Equal(t, int64(42), info.RowCount)
	assert.Equal(t, []ColumnInfo{
		{Name: "player_id", DataType: "bigint", Nullable: "NO"},
		{Name: "player_name", DataType: "text", Nullable: "NO"},
	}, info.Columns)
	assert.Equal(t, []string{"describe_table", "count_table_rows"}, observer.ops)
}

func TestProvider_DescribeTableUnconfigured(t *testing.T) {
	p := NewProvider(Config{}, nil)

	_, err := p.DescribeTable(context.Background(), "stats")
	assert.True(t, errors.Is(err, ErrConnectionUnavailable))
}
