// FILE: feed_ws.go
// Package main – live websocket market data source.
//
// Connecting is a two-step dance: an authorize call against the REST API
// returns a one-shot websocket URI, then we dial it and send a JSON
// subscribe frame for the session universe. Incoming frames carry a feeds
// map keyed by instrument; each frame becomes one TickBatch on the output
// channel.
//
// The reader reconnects with backoff on any error until ctx is cancelled.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSFeed streams live ticks for a fixed instrument universe.
type WSFeed struct {
	authURL string
	token   string
	mode    string // "ltpc" or "full"
	keys    []string
	hc      *http.Client
}

func NewWSFeed(authURL, accessToken, mode string, instrumentKeys []string) *WSFeed {
	return &WSFeed{
		authURL: authURL,
		token:   accessToken,
		mode:    mode,
		keys:    instrumentKeys,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

type wsAuthorizeResponse struct {
	Data struct {
		AuthorizedRedirectURI string `json:"authorized_redirect_uri"`
	} `json:"data"`
}

// authorize asks the REST API for a websocket endpoint for this token.
func (w *WSFeed) authorize(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.authURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("Accept", "application/json")

	res, err := w.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		rb, _ := io.ReadAll(res.Body)
		return "", fmt.Errorf("feed authorize %d: %s", res.StatusCode, string(rb))
	}
	var out wsAuthorizeResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode authorize response: %w", err)
	}
	if out.Data.AuthorizedRedirectURI == "" {
		return "", fmt.Errorf("authorize response missing redirect uri")
	}
	return out.Data.AuthorizedRedirectURI, nil
}

type wsSubscribeFrame struct {
	GUID   string `json:"guid"`
	Method string `json:"method"`
	Data   struct {
		Mode           string   `json:"mode"`
		InstrumentKeys []string `json:"instrumentKeys"`
	} `json:"data"`
}

type wsFeedFrame struct {
	Feeds map[string]struct {
		LTP    float64 `json:"ltp"`
		High   float64 `json:"high"`
		Low    float64 `json:"low"`
		Close  float64 `json:"cp"`
		Volume float64 `json:"vol"`
	} `json:"feeds"`
}

// Run streams batches onto out until ctx is cancelled, reconnecting on
// errors. It closes out on exit.
func (w *WSFeed) Run(ctx context.Context, out chan<- TickBatch) {
	defer close(out)
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}
		if err := w.streamOnce(ctx, out); err != nil && ctx.Err() == nil {
			log.Printf("[WARN] feed stream ended: %v; reconnecting in %s", err, backoff)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second
	}
}

func (w *WSFeed) streamOnce(ctx context.Context, out chan<- TickBatch) error {
	wsURL, err := w.authorize(ctx)
	if err != nil {
		return fmt.Errorf("authorize: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	// Close the socket when ctx ends so ReadMessage unblocks.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	sub := wsSubscribeFrame{GUID: uuid.New().String(), Method: "sub"}
	sub.Data.Mode = w.mode
	sub.Data.InstrumentKeys = w.keys
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	log.Printf("[INFO] feed connected, subscribed %d instruments mode=%s", len(w.keys), w.mode)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var frame wsFeedFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			log.Printf("TRACE feed: undecodable frame (%d bytes): %v", len(msg), err)
			continue
		}
		if len(frame.Feeds) == 0 {
			continue
		}
		batch := TickBatch{At: time.Now().UTC()}
		for key, f := range frame.Feeds {
			batch.Ticks = append(batch.Ticks, InstrumentTick{
				Instrument: key,
				LTP:        f.LTP,
				High:       f.High,
				Low:        f.Low,
				Close:      f.Close,
				Volume:     f.Volume,
			})
		}
		select {
		case out <- batch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
