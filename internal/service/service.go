package service

import (
	"github.com/avialab/flightledger/internal/events"
	"github.com/avialab/flightledger/internal/gateway"
	"github.com/avialab/flightledger/internal/pg"
	"github.com/avialab/flightledger/internal/repo"
	"github.com/avialab/flightledger/internal/service/invoiceservice"
	"github.com/avialab/flightledger/internal/service/journalservice"
	"github.com/avialab/flightledger/internal/service/ledgerservice"
	"github.com/avialab/flightledger/internal/service/packageservice"
	"github.com/avialab/flightledger/internal/service/paymentservice"
	"github.com/avialab/flightledger/internal/service/pricingservice"
)

type Services struct {
	LedgerService  *ledgerservice.Service
	JournalService *journalservice.Service
	PricingService *pricingservice.Service
	PackageService *packageservice.Service
	InvoiceService *invoiceservice.Service
	PaymentService *paymentservice.Service
}

func New(repos *repo.Repositories, txManager pg.TXManager, publisher events.Publisher, gw gateway.Gateway) *Services {
	ledgerService := ledgerservice.New(repos.AccountRepo, repos.TransactionRepo, txManager, publisher)
	journalService := journalservice.New(repos.TransactionRepo, repos.AccountRepo, txManager, publisher)
	pricingService := pricingservice.New(repos.PricingRepo)
	packageService := packageservice.New(repos.PackageRepo, txManager, publisher)
	invoiceService := invoiceservice.New(repos.InvoiceRepo, ledgerService, txManager, publisher)
	paymentService := paymentservice.New(gw, repos.GatewayLogRepo, ledgerService, journalService)

	return &Services{
		LedgerService:  ledgerService,
		JournalService: journalService,
		PricingService: pricingService,
		PackageService: packageService,
		InvoiceService: invoiceService,
		PaymentService: paymentService,
	}
}
