package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tonindexer/gasused/internal/app"
	"github.com/tonindexer/gasused/internal/core"
	"github.com/tonindexer/gasused/internal/core/aggregate"
)

// @title      		gasused
// @version         0.0.1
// @description     Project sums transaction fees paid by accounts interacting with a contract.

// @license.name  	Apache 2.0
// @license.url   	http://www.apache.org/licenses/LICENSE-2.0.html

// @host      		localhost
// @BasePath  		/api/v1
// @schemes 		http

var basePath = "/api/v1"

var _ QueryController = (*Controller)(nil)

type Controller struct {
	svc app.QueryService
}

func NewController(svc app.QueryService) *Controller {
	return &Controller{svc: svc}
}

func paramErr(ctx *gin.Context, param string, err error) {
	ctx.IndentedJSON(http.StatusBadRequest, gin.H{"param": param, "error": err.Error()})
}

func internalErr(ctx *gin.Context, err error) {
	log.Error().Str("path", ctx.FullPath()).Err(err).Msg("internal server error")
	ctx.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func upstreamErr(ctx *gin.Context, err error) {
	log.Error().Str("path", ctx.FullPath()).Err(err).Msg("explorer request failed")
	ctx.IndentedJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

type FeeTotal struct {
	Address string `json:"address"`
	Wei     string `json:"wei"`
	Ether   string `json:"ether"`
}

type FeesRes struct {
	Contract         string             `json:"contract"`
	TransactionCount int                `json:"transaction_count"`
	Totals           []*FeeTotal        `json:"totals"`
	Stats            aggregate.FeeStats `json:"stats"`
}

func mapFeesRes(contract string, res *aggregate.FeesRes) *FeesRes {
	ret := &FeesRes{
		Contract:         contract,
		TransactionCount: res.Stats.Processed,
		Totals:           make([]*FeeTotal, 0, len(res.Addresses)),
		Stats:            res.Stats,
	}
	for _, a := range res.Addresses {
		total := res.Totals[a]
		ret.Totals = append(ret.Totals, &FeeTotal{
			Address: a,
			Wei:     total.Dec(),
			Ether:   aggregate.FormatEther(total),
		})
	}
	return ret
}

// GetFees godoc
//	@Summary		fees spent by addresses
//	@Description	Scans the whole transaction history of the contract and sums gas fees sent by the given addresses
//	@Tags			fee
//	@Accept			json
//	@Produce		json
//  @Param   		contract     		query   string 		true    "contract address"
//  @Param   		address				query	[]string  	true	"tracked sender addresses"
//	@Success		200		{object}	FeesRes
//	@Router			/fees [get]
func (c *Controller) GetFees(ctx *gin.Context) {
	var req aggregate.FeesReq

	if err := ctx.ShouldBindQuery(&req); err != nil {
		paramErr(ctx, "fees_request", err)
		return
	}
	if req.Contract == "" {
		paramErr(ctx, "contract", errors.New("contract address is required"))
		return
	}
	if len(req.Addresses) == 0 {
		paramErr(ctx, "address", errors.New("at least one address is required"))
		return
	}

	ret, err := c.svc.GetFees(ctx, &req)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrInvalidArg):
		paramErr(ctx, "fees_request", err)
		return
	case errors.Is(err, core.ErrAccumulationOverflow):
		internalErr(ctx, err)
		return
	default:
		upstreamErr(ctx, err)
		return
	}

	ctx.IndentedJSON(http.StatusOK, mapFeesRes(req.Contract, ret))
}
