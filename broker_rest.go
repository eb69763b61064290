// FILE: broker_rest.go
// Package main – HTTP broker for the exchange order-placement API.
//
// Places intraday LIMIT orders against an Upstox-style v3 REST endpoint:
//   POST {base}/v3/order/place  (Authorization: Bearer <access token>)
//
// Behavior:
//   • Non-2xx responses become errors; a 401 gets a dedicated hint since it
//     almost always means the day's access token expired or was not rotated.
//   • Every request carries a uuid correlation tag so fills can be traced
//     back through the exchange order book.
//   • On construction the access token is parsed as an UNVERIFIED JWT purely
//     to read its expiry claim: if the token lapses before the session close
//     we log a warning up front instead of failing mid-session.
//
// Order placement failures are never fatal to a batch: the Session logs
// them and moves on (the signal's dedupe slot stays consumed).

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RESTBroker talks to the exchange order API.
type RESTBroker struct {
	base    string
	token   string
	product string // exchange product code, "I" = intraday
	hc      *http.Client
}

func NewRESTBroker(baseURL, accessToken, product string) *RESTBroker {
	b := &RESTBroker{
		base:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(accessToken),
		product: product,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
	b.warnIfTokenExpiresEarly()
	return b
}

func (b *RESTBroker) Name() string { return "rest" }

// placeOrderBody mirrors the v3 place-order request schema.
type placeOrderBody struct {
	Quantity          int     `json:"quantity"`
	Product           string  `json:"product"`
	Validity          string  `json:"validity"`
	Price             float64 `json:"price"`
	InstrumentToken   string  `json:"instrument_token"`
	OrderType         string  `json:"order_type"`
	TransactionType   string  `json:"transaction_type"`
	DisclosedQuantity int     `json:"disclosed_quantity"`
	TriggerPrice      float64 `json:"trigger_price"`
	IsAMO             bool    `json:"is_amo"`
	Tag               string  `json:"tag,omitempty"`
}

type placeOrderResponse struct {
	Status string `json:"status"`
	Data   struct {
		OrderID  string   `json:"order_id"`
		OrderIDs []string `json:"order_ids"`
	} `json:"data"`
}

func (b *RESTBroker) PlaceLimitOrder(ctx context.Context, req OrderRequest) (*PlacedOrder, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be >= 1 (got %d)", req.Quantity)
	}

	body := placeOrderBody{
		Quantity:        req.Quantity,
		Product:         b.product,
		Validity:        "DAY",
		Price:           req.LimitPrice,
		InstrumentToken: req.Instrument,
		OrderType:       "LIMIT",
		TransactionType: string(req.Side),
		Tag:             uuid.New().String(),
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	u := b.base + "/v3/order/place"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(bs))
	if err != nil {
		return nil, fmt.Errorf("newrequest order: %w (url=%s)", err, u)
	}
	httpReq.Header.Set("Authorization", "Bearer "+b.token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := b.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		rb, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("order place 401 (access token expired or invalid): %s", string(rb))
	}
	if res.StatusCode >= 300 {
		rb, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("order place %d: %s", res.StatusCode, string(rb))
	}

	var out placeOrderResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	orderID := out.Data.OrderID
	if orderID == "" && len(out.Data.OrderIDs) > 0 {
		orderID = out.Data.OrderIDs[0]
	}
	if orderID == "" {
		return nil, fmt.Errorf("order accepted but no order id in response (status=%s)", out.Status)
	}

	return &PlacedOrder{
		OrderID:    orderID,
		Instrument: req.Instrument,
		Side:       req.Side,
		Quantity:   req.Quantity,
		LimitPrice: req.LimitPrice,
		CreateTime: time.Now().UTC(),
	}, nil
}

// warnIfTokenExpiresEarly reads the token's exp claim without verifying the
// signature (we are not the issuer; we only want the timestamp). Tokens for
// this exchange are rotated daily, so an expiry before 16:00 local means the
// operator is running with yesterday's token.
func (b *RESTBroker) warnIfTokenExpiresEarly() {
	if b.token == "" {
		return
	}
	tok, _, err := jwt.NewParser().ParseUnverified(b.token, jwt.MapClaims{})
	if err != nil {
		log.Printf("[WARN] access token is not a parseable JWT; cannot check expiry: %v", err)
		return
	}
	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if time.Until(exp.Time) <= 0 {
		log.Printf("[ERROR] access token already expired at %s; orders will be rejected", exp.Time.Format(time.RFC3339))
		return
	}
	if time.Until(exp.Time) < 8*time.Hour {
		log.Printf("[WARN] access token expires at %s; may lapse before session close", exp.Time.Format(time.RFC3339))
	}
}
