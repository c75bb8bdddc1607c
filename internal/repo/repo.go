package repo

import (
	"github.com/avialab/flightledger/internal/pg"
	accountrepo "github.com/avialab/flightledger/internal/repo/account-repo"
	gatewaylogrepo "github.com/avialab/flightledger/internal/repo/gatewaylog-repo"
	invoicerepo "github.com/avialab/flightledger/internal/repo/invoice-repo"
	packagerepo "github.com/avialab/flightledger/internal/repo/package-repo"
	pricingrepo "github.com/avialab/flightledger/internal/repo/pricing-repo"
	transactionrepo "github.com/avialab/flightledger/internal/repo/transaction-repo"
)

type Repositories struct {
	AccountRepo     *accountrepo.Repository
	TransactionRepo *transactionrepo.Repository
	PricingRepo     *pricingrepo.Repository
	PackageRepo     *packagerepo.Repository
	InvoiceRepo     *invoicerepo.Repository
	GatewayLogRepo  *gatewaylogrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		AccountRepo:     accountrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		PricingRepo:     pricingrepo.New(conn),
		PackageRepo:     packagerepo.New(conn),
		InvoiceRepo:     invoicerepo.New(conn),
		GatewayLogRepo:  gatewaylogrepo.New(conn),
	}
}
