package packages

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/avialab/flightledger/internal/domain"
	"github.com/avialab/flightledger/internal/dto"
	"github.com/avialab/flightledger/internal/service/packageservice"
	"github.com/avialab/flightledger/pkg/utils"
)

type Service interface {
	Purchase(ctx context.Context, accountID int, name string, credit, hours *decimal.Decimal, validity time.Duration) (*domain.UserPackage, error)
	Get(ctx context.Context, id int) (*domain.UserPackage, error)
	ListByAccount(ctx context.Context, accountID int) ([]domain.UserPackage, error)
	UsageHistory(ctx context.Context, packageID int) ([]domain.PackageUsage, error)
	UseCredit(ctx context.Context, packageID int, amount decimal.Decimal, reference string) (*domain.UserPackage, error)
	UseHours(ctx context.Context, packageID int, hours decimal.Decimal, reference string) (*domain.UserPackage, error)
}

type PackageHandler struct {
	packageService Service
}

func New(packageService Service) *PackageHandler {
	return &PackageHandler{packageService: packageService}
}

func packageToDTO(p *domain.UserPackage) dto.PackageResponseDTO {
	return dto.PackageResponseDTO{
		ID:              p.ID,
		AccountID:       p.AccountID,
		Name:            p.PackageName,
		CreditRemaining: p.CreditRemaining,
		HoursRemaining:  p.HoursRemaining,
		PurchasedAt:     p.PurchasedAt,
		ExpiresAt:       p.ExpiresAt,
		Status:          string(p.Status),
	}
}

func respondPackageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, packageservice.ErrPackageNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, packageservice.ErrInsufficientCredits),
		errors.Is(err, packageservice.ErrInsufficientHours):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, packageservice.ErrPackageNotActive),
		errors.Is(err, packageservice.ErrPackageExpired):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, packageservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func packageID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// Purchase godoc
//
//	@Summary		Purchase a prepaid package
//	@Tags			Packages
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PurchasePackageRequestDTO	true	"Package details"
//	@Success		201		{object}	dto.PackageResponseDTO			"Purchased package"
//	@Failure		400		{object}	utils.Response					"Invalid request body"
//	@Router			/api/packages [post]
func (h *PackageHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req dto.PurchasePackageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	validity := time.Duration(req.ValidityDays) * 24 * time.Hour
	p, err := h.packageService.Purchase(r.Context(), req.AccountID, req.Name, req.Credit, req.Hours, validity)
	if err != nil {
		respondPackageError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, packageToDTO(p))
}

// GetPackage godoc
//
//	@Summary	Get a package
//	@Tags		Packages
//	@Produce	json
//	@Param		id	path		int						true	"Package ID"
//	@Success	200	{object}	dto.PackageResponseDTO	"Package"
//	@Failure	404	{object}	utils.Response			"Package not found"
//	@Router		/api/packages/{id} [get]
func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := packageID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	p, err := h.packageService.Get(r.Context(), id)
	if err != nil {
		respondPackageError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, packageToDTO(p))
}

// ListPackages godoc
//
//	@Summary	List packages for an account
//	@Tags		Packages
//	@Produce	json
//	@Param		account_id	query		int						true	"Account ID"
//	@Success	200			{array}		dto.PackageResponseDTO	"Packages"
//	@Success	204			{object}	utils.Response			"No packages"
//	@Router		/api/packages [get]
func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	accountID, err := strconv.Atoi(r.URL.Query().Get("account_id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid account_id")
		return
	}
	pkgs, err := h.packageService.ListByAccount(r.Context(), accountID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch packages")
		return
	}
	if len(pkgs) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Packages not found")
		return
	}
	response := make([]dto.PackageResponseDTO, len(pkgs))
	for i, p := range pkgs {
		response[i] = packageToDTO(&p)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UseCredit godoc
//
//	@Summary		Draw down package credit
//	@Description	Deducts monetary credit from the package; fails without partial draw when the balance is short.
//	@Tags			Packages
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Package ID"
//	@Param			request	body		dto.UsePackageRequestDTO	true	"Draw amount"
//	@Success		200		{object}	dto.PackageResponseDTO	"Updated package"
//	@Failure		402		{object}	utils.Response			"Insufficient credits"
//	@Failure		409		{object}	utils.Response			"Package expired or inactive"
//	@Router			/api/packages/{id}/use-credit [post]
func (h *PackageHandler) UseCredit(w http.ResponseWriter, r *http.Request) {
	h.use(w, r, h.packageService.UseCredit)
}

// UseHours godoc
//
//	@Summary	Draw down package hours
//	@Tags		Packages
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Package ID"
//	@Param		request	body		dto.UsePackageRequestDTO	true	"Hours to draw"
//	@Success	200		{object}	dto.PackageResponseDTO	"Updated package"
//	@Failure	402		{object}	utils.Response			"Insufficient hours"
//	@Router		/api/packages/{id}/use-hours [post]
func (h *PackageHandler) UseHours(w http.ResponseWriter, r *http.Request) {
	h.use(w, r, h.packageService.UseHours)
}

func (h *PackageHandler) use(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, packageID int, amount decimal.Decimal, reference string) (*domain.UserPackage, error)) {
	id, err := packageID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	var req dto.UsePackageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := fn(r.Context(), id, req.Amount, req.Reference)
	if err != nil {
		respondPackageError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, packageToDTO(p))
}

// UsageHistory godoc
//
//	@Summary	List package usage records
//	@Tags		Packages
//	@Produce	json
//	@Param		id	path		int								true	"Package ID"
//	@Success	200	{array}		dto.PackageUsageResponseDTO		"Usage records, newest first"
//	@Success	204	{object}	utils.Response					"No usage"
//	@Router		/api/packages/{id}/usage [get]
func (h *PackageHandler) UsageHistory(w http.ResponseWriter, r *http.Request) {
	id, err := packageID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	usage, err := h.packageService.UsageHistory(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch usage")
		return
	}
	if len(usage) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Usage not found")
		return
	}
	response := make([]dto.PackageUsageResponseDTO, len(usage))
	for i, u := range usage {
		response[i] = dto.PackageUsageResponseDTO{
			Kind:      string(u.Kind),
			Amount:    u.Amount,
			Remaining: u.Remaining,
			Reference: u.Reference,
			UsedAt:    u.UsedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
