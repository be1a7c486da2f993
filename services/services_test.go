package services

import (
	"time"

	"github.com/Arihaan/ZKShop/structs"
	"github.com/MonkyMars/gecho"
)

func testLogger() *gecho.Logger {
	return gecho.NewDefaultLogger()
}

func testLedgerConfig() *structs.LedgerConfig {
	return &structs.LedgerConfig{
		DefaultTokenID:      "EUDemo",
		Memo:                "ZKShop purchase",
		PollInterval:        time.Millisecond,
		FinalizationTimeout: time.Second,
	}
}

func ptr[T any](v T) *T {
	return &v
}
