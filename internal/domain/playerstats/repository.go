package playerstats

import "context"

type Repository interface {
	HasPlayer(ctx context.Context, playerID int64) (bool, error)
	GetWideRow(ctx context.Context, playerID int64) (WideRow, bool, error)
	ListWideRows(ctx context.Context, playerIDs []int64) ([]WideRow, error)
}
