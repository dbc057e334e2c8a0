package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLessFee(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		feeBps  uint32
		wantNet int64
		wantFee int64
	}{
		{"0.3% on 999 floors the fee", 999, 30, 997, 2},
		{"0.3% on 1000", 1000, 30, 997, 3},
		{"zero fee", 999, 0, 999, 0},
		{"fee below one unit rounds to zero", 10, 30, 10, 0},
		{"25 basis points", 65156000, 25, 64993110, 162890},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, fee := LessFee(decimal.NewFromInt(tt.amount), tt.feeBps)
			require.True(t, decimal.NewFromInt(tt.wantNet).Equal(net))
			require.True(t, decimal.NewFromInt(tt.wantFee).Equal(fee))
		})
	}
}

func TestGrossFromNet(t *testing.T) {
	tests := []struct {
		name      string
		net       int64
		feeBps    uint32
		wantGross int64
	}{
		{"exact inverse", 997, 30, 1000},
		{"zero fee", 500, 0, 500},
		{"rounds the gross up", 1000, 30, 1004},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gross, fee := GrossFromNet(decimal.NewFromInt(tt.net), tt.feeBps)
			require.True(t, decimal.NewFromInt(tt.wantGross).Equal(gross))
			require.True(t, gross.Sub(decimal.NewFromInt(tt.net)).Equal(fee))

			// The gross amount must net at least the requested amount back.
			net, _ := LessFee(gross, tt.feeBps)
			require.True(t, net.GreaterThanOrEqual(decimal.NewFromInt(tt.net)))
		})
	}
}

func TestFeeShare(t *testing.T) {
	require.True(t, decimal.NewFromInt(1).Equal(
		FeeShare(decimal.NewFromInt(2), 5000),
	))
	require.True(t, decimal.Zero.Equal(
		FeeShare(decimal.NewFromInt(2), 0),
	))
	require.True(t, decimal.NewFromInt(2).Equal(
		FeeShare(decimal.NewFromInt(2), 10000),
	))
}
