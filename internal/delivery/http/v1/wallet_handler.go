package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type WalletHandler struct {
	walletUC domain.WalletUsecase
}

func NewWalletHandler(protected *gin.RouterGroup, walletUC domain.WalletUsecase) {
	handler := &WalletHandler{walletUC: walletUC}

	me := protected.Group("/me")
	{
		me.GET("/transactions", handler.History)
		me.GET("/transactions/export", handler.Export)
		me.GET("/balance", handler.Balance)
	}
}

// History godoc
// @Summary      My transactions
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Transaction}
// @Router       /me/transactions [get]
// @Security     BearerAuth
func (h *WalletHandler) History(c *gin.Context) {
	txs, err := h.walletUC.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Transactions retrieved", txs)
}

// Balance godoc
// @Summary      My balance
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.BalanceSummary}
// @Router       /me/balance [get]
// @Security     BearerAuth
func (h *WalletHandler) Balance(c *gin.Context) {
	summary, err := h.walletUC.Summary(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Balance retrieved", summary)
}

// Export godoc
// @Summary      Export my transactions
// @Tags         wallet
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /me/transactions/export [get]
// @Security     BearerAuth
func (h *WalletHandler) Export(c *gin.Context) {
	data, filename, err := h.walletUC.Export(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, filename, xlsxContentType, data)
}
