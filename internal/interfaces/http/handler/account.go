package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	accountapp "github.com/shopcart/backend/internal/application/account"
	"github.com/shopcart/backend/internal/domain/identity"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/interfaces/http/middleware"
)

// IdempotencyKeyHeader lets clients retry a transfer safely
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 128

// AccountHandler serves the caller's wallet and money transfers
type AccountHandler struct {
	BaseHandler
	accountService  *accountapp.AccountService
	transferService *accountapp.TransferService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *accountapp.AccountService, transferService *accountapp.TransferService) *AccountHandler {
	return &AccountHandler{
		accountService:  accountService,
		transferService: transferService,
	}
}

// GetMine godoc
// @Summary      Get my account
// @Description  The wallet account of the authenticated user
// @Tags         accounts
// @Produce      json
// @Success      200 {object} dto.Response{data=accountapp.AccountResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts/me [get]
func (h *AccountHandler) GetMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	acc, err := h.accountService.GetForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, acc)
}

// ListMyTransactions godoc
// @Summary      List my transactions
// @Description  Ledger entries touching the caller's account, newest first
// @Tags         accounts
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        pageSize query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]accountapp.TransactionResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /accounts/me/transactions [get]
func (h *AccountHandler) ListMyTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if filter.Page, err = queryInt(c, "page", 1); err != nil {
		h.HandleError(c, err)
		return
	}
	if filter.PageSize, err = queryInt(c, "pageSize", filter.PageSize); err != nil {
		h.HandleError(c, err)
		return
	}

	page, err := h.accountService.ListTransactionsForUser(c.Request.Context(), userID, filter.Normalize())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Transfer godoc
// @Summary      Transfer money
// @Description  Move an amount between two accounts atomically. The source account must belong
// @Description  to the caller unless the caller is an administrator.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client key making retries safe"
// @Param        request body accountapp.TransferRequest true "Transfer"
// @Success      201 {object} dto.Response{data=accountapp.TransactionResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /transfers [post]
func (h *AccountHandler) Transfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req accountapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, IdempotencyKeyHeader+" is too long")
		return
	}
	req.IdempotencyKey = key
	req.RequestedBy = &userID
	req.IsAdmin = middleware.HasRole(c, identity.RoleAdmin.String())

	tx, err := h.transferService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}
