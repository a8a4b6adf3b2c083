package repositories

import (
	"github.com/uptrace/bun"

	"github.com/sellfast/marketplace/internal/domain/bids"
	"github.com/sellfast/marketplace/internal/domain/chats"
	"github.com/sellfast/marketplace/internal/domain/ledger"
	"github.com/sellfast/marketplace/internal/gateways/database"
)

func NewLedgerUnitOfWork(tm *database.TransactionManager) *database.UnitOfWork[ledger.Tx] {
	return database.NewUnitOfWork(tm, func(tx bun.Tx) ledger.Tx {
		return ledgerTx{db: tx}
	})
}

func NewBidUnitOfWork(tm *database.TransactionManager) *database.UnitOfWork[bids.Tx] {
	return database.NewUnitOfWork(tm, func(tx bun.Tx) bids.Tx {
		return bidTx{ledgerTx{db: tx}}
	})
}

func NewChatUnitOfWork(tm *database.TransactionManager) *database.UnitOfWork[chats.Tx] {
	return database.NewUnitOfWork(tm, func(tx bun.Tx) chats.Tx {
		return chatTx{db: tx}
	})
}
