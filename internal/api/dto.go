package api

import (
	"time"

	"github.com/abdoElHodaky/matchcore/internal/matching"
	"github.com/shopspring/decimal"
)

// SubmitOrderRequest is the request body for POST /v1/orders, grounded
// in order_handler.go's CreateOrderRequest binding-tag style.
type SubmitOrderRequest struct {
	OrderID   uint64          `json:"order_id" binding:"required"`
	Symbol    string          `json:"symbol" binding:"required"`
	Side      string          `json:"side" binding:"required,oneof=ask bid"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Volume    uint64          `json:"volume" binding:"required,gt=0"`
	Account   string          `json:"account"`
	ExpireSec uint64          `json:"expire_sec"`
}

// OrderView is the JSON projection of a matching.Order returned to
// clients.
type OrderView struct {
	OrderID   uint64    `json:"order_id"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Price     string    `json:"price"`
	Volume    uint64    `json:"volume"`
	Account   string    `json:"account"`
	Time      time.Time `json:"time"`
	ExpireSec uint64    `json:"expire_sec"`
}

func toOrderView(o matching.Order) OrderView {
	return OrderView{
		OrderID:   uint64(o.ID),
		Symbol:    o.Symbol,
		Side:      o.Side.String(),
		Price:     o.Price.String(),
		Volume:    o.Volume,
		Account:   o.Account,
		Time:      o.Time,
		ExpireSec: o.ExpireSec,
	}
}

// TradeView is the JSON projection of a matching.Trade.
type TradeView struct {
	ID            string    `json:"id"`
	AcceptedOrder OrderView `json:"accepted_order"`
	MatchedOrder  OrderView `json:"matched_order"`
	VolumeFilled  uint64    `json:"volume_filled"`
	FinalPrice    string    `json:"final_price"`
	PriceGap      string    `json:"price_gap"`
	Time          time.Time `json:"time"`
}

func toTradeView(t matching.Trade) TradeView {
	return TradeView{
		ID:            t.ID,
		AcceptedOrder: toOrderView(t.AcceptedOrder),
		MatchedOrder:  toOrderView(t.MatchedOrder),
		VolumeFilled:  t.VolumeFilled,
		FinalPrice:    t.FinalPrice.String(),
		PriceGap:      t.PriceGap.String(),
		Time:          t.Time,
	}
}

// SubmitOrderResponse is returned for a successful submission: an ack
// plus the post-time-stamp snapshot of the submitted order and any
// trades it produced immediately.
type SubmitOrderResponse struct {
	Order  OrderView   `json:"order"`
	Trades []TradeView `json:"trades"`
}

// BookViewResponse renders a book snapshot as two arrays: Asks
// worst-to-best, then Bids best-to-worst.
type BookViewResponse struct {
	Symbol string      `json:"symbol"`
	Asks   []OrderView `json:"asks"`
	Bids   []OrderView `json:"bids"`
}

func toBookViewResponse(v matching.BookView) BookViewResponse {
	resp := BookViewResponse{Symbol: v.Symbol}
	for _, o := range v.Asks {
		resp.Asks = append(resp.Asks, toOrderView(o))
	}
	for _, o := range v.Bids {
		resp.Bids = append(resp.Bids, toOrderView(o))
	}
	return resp
}
