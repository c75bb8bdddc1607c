package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/avialab/flightledger/docs"
	accounthandlers "github.com/avialab/flightledger/internal/handlers/accounts"
	invoicehandlers "github.com/avialab/flightledger/internal/handlers/invoices"
	packagehandlers "github.com/avialab/flightledger/internal/handlers/packages"
	paymenthandlers "github.com/avialab/flightledger/internal/handlers/payments"
	pricinghandlers "github.com/avialab/flightledger/internal/handlers/pricing"
	"github.com/avialab/flightledger/internal/service"
)

type AccountHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	Charge(w http.ResponseWriter, r *http.Request)
	Credit(w http.ResponseWriter, r *http.Request)
	Transfer(w http.ResponseWriter, r *http.Request)
	Reserve(w http.ResponseWriter, r *http.Request)
	Release(w http.ResponseWriter, r *http.Request)
	Suspend(w http.ResponseWriter, r *http.Request)
	Reactivate(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
	ReverseTransaction(w http.ResponseWriter, r *http.Request)
}

type InvoiceHandler interface {
	CreateInvoice(w http.ResponseWriter, r *http.Request)
	GetInvoice(w http.ResponseWriter, r *http.Request)
	ListInvoices(w http.ResponseWriter, r *http.Request)
	AddLineItem(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
	MarkViewed(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
	Void(w http.ResponseWriter, r *http.Request)
}

type PackageHandler interface {
	Purchase(w http.ResponseWriter, r *http.Request)
	GetPackage(w http.ResponseWriter, r *http.Request)
	ListPackages(w http.ResponseWriter, r *http.Request)
	UseCredit(w http.ResponseWriter, r *http.Request)
	UseHours(w http.ResponseWriter, r *http.Request)
	UsageHistory(w http.ResponseWriter, r *http.Request)
}

type PricingHandler interface {
	Quote(w http.ResponseWriter, r *http.Request)
	CreateRule(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Charge(w http.ResponseWriter, r *http.Request)
	Refund(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AccountHandler AccountHandler
	InvoiceHandler InvoiceHandler
	PackageHandler PackageHandler
	PricingHandler PricingHandler
	PaymentHandler PaymentHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AccountHandler: accounthandlers.New(s.LedgerService, s.JournalService),
		InvoiceHandler: invoicehandlers.New(s.InvoiceService),
		PackageHandler: packagehandlers.New(s.PackageService),
		PricingHandler: pricinghandlers.New(s.PricingService),
		PaymentHandler: paymenthandlers.New(s.PaymentService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.AccountHandler.CreateAccount)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.AccountHandler.GetAccount)
				r.Post("/charge", h.AccountHandler.Charge)
				r.Post("/credit", h.AccountHandler.Credit)
				r.Post("/transfer", h.AccountHandler.Transfer)
				r.Post("/holds", h.AccountHandler.Reserve)
				r.Post("/holds/release", h.AccountHandler.Release)
				r.Post("/suspend", h.AccountHandler.Suspend)
				r.Post("/reactivate", h.AccountHandler.Reactivate)
				r.Post("/close", h.AccountHandler.Close)
				r.Get("/transactions", h.AccountHandler.GetTransactions)
				r.Post("/payments", h.PaymentHandler.Charge)
				r.Post("/refunds", h.PaymentHandler.Refund)
			})
		})
		r.Post("/transactions/{id}/reverse", h.AccountHandler.ReverseTransaction)
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/", h.InvoiceHandler.CreateInvoice)
			r.Get("/", h.InvoiceHandler.ListInvoices)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.InvoiceHandler.GetInvoice)
				r.Post("/items", h.InvoiceHandler.AddLineItem)
				r.Post("/finalize", h.InvoiceHandler.Finalize)
				r.Post("/send", h.InvoiceHandler.Send)
				r.Post("/viewed", h.InvoiceHandler.MarkViewed)
				r.Post("/payments", h.InvoiceHandler.RecordPayment)
				r.Post("/void", h.InvoiceHandler.Void)
			})
		})
		r.Route("/packages", func(r chi.Router) {
			r.Post("/", h.PackageHandler.Purchase)
			r.Get("/", h.PackageHandler.ListPackages)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.PackageHandler.GetPackage)
				r.Post("/use-credit", h.PackageHandler.UseCredit)
				r.Post("/use-hours", h.PackageHandler.UseHours)
				r.Get("/usage", h.PackageHandler.UsageHistory)
			})
		})
		r.Route("/pricing", func(r chi.Router) {
			r.Post("/quote", h.PricingHandler.Quote)
			r.Post("/rules", h.PricingHandler.CreateRule)
		})
	})

	return r
}
