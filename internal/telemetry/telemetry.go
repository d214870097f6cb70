/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in anonymous usage events in batches and
// uploads crash reports. Nothing is sent unless the user opted in.
package telemetry

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	applog "gradientdesigner/internal/log"
	"gradientdesigner/internal/version"
)

const (
	defaultTimeout   = 1500 * time.Millisecond
	defaultBatchSize = 20
	defaultInterval  = 5 * time.Second
)

// Config controls the client. The zero value is a disabled client.
// Token is sent as a bearer token with every request. BatchSize events are
// posted together and FlushInterval bounds how long a queued event waits.
//
// FromEnv reads GD_TELEMETRY_OPT_IN, GD_TELEMETRY_URL, GD_CRASH_UPLOAD_URL,
// GD_TELEMETRY_TIMEOUT_MS and GD_TELEMETRY_DEBUG.
type Config struct {
	OptIn         bool
	EventsURL     string
	CrashURL      string
	Token         string
	Timeout       time.Duration
	BatchSize     int
	FlushInterval time.Duration
	DebugLogging  bool
}

func FromEnv() Config {
	cfg := Config{
		OptIn:        parseBool(os.Getenv("GD_TELEMETRY_OPT_IN")),
		EventsURL:    strings.TrimSpace(os.Getenv("GD_TELEMETRY_URL")),
		CrashURL:     strings.TrimSpace(os.Getenv("GD_CRASH_UPLOAD_URL")),
		DebugLogging: os.Getenv("GD_TELEMETRY_DEBUG") != "",
	}
	if ms, err := strconv.Atoi(strings.TrimSpace(os.Getenv("GD_TELEMETRY_TIMEOUT_MS"))); err == nil && ms > 0 {
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}
	return cfg
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// record is one queued event.
type record struct {
	Name  string         `json:"name"`
	TS    string         `json:"ts"`
	Props map[string]any `json:"props,omitempty"`
}

// batch is the body posted to EventsURL.
type batch struct {
	Session string   `json:"session"`
	Version string   `json:"version"`
	OS      string   `json:"os"`
	Arch    string   `json:"arch"`
	Events  []record `json:"events"`
}

// Client queues events and posts them from a single goroutine.
// Event never blocks; when the queue is full the event is dropped.
type Client struct {
	cfg     Config
	log     *slog.Logger
	http    *http.Client
	session string

	q       chan record
	flushes chan chan struct{}
	closed  chan struct{}
	done    chan struct{}
	once    sync.Once
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// New starts a client for cfg.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultInterval
	}
	c := &Client{
		cfg:     cfg,
		log:     applog.WithComponent("telemetry"),
		http:    &http.Client{Timeout: cfg.Timeout},
		session: newSession(),
		q:       make(chan record, 4*cfg.BatchSize),
		flushes: make(chan chan struct{}),
		closed:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.loop()
	return c
}

func newSession() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b[:])
}

// InitDefault builds the package client from the environment unless one is installed.
func InitDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		defaultClient = New(FromEnv())
	}
}

// NewDefault installs a client for cfg as the package client, closing the previous one.
func NewDefault(cfg Config) {
	c := New(cfg)
	defaultMu.Lock()
	prev := defaultClient
	defaultClient = c
	defaultMu.Unlock()
	if prev != nil {
		prev.Close()
	}
}

// Default returns the package client.
func Default() *Client {
	InitDefault()
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultClient
}

func Enabled() bool { return Default().Enabled() }
func Event(name string, props map[string]any) { Default().Event(name, props) }
func UploadCrash(report []byte) { Default().UploadCrash(report) }

// Enabled reports whether events will be sent.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Session is the random identifier shared by this client's batches.
func (c *Client) Session() string { return c.session }

// Event queues name with props. Props must not identify the user.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	r := record{Name: name, TS: time.Now().UTC().Format(time.RFC3339Nano)}
	if len(props) > 0 {
		r.Props = make(map[string]any, len(props))
		for k, v := range props {
			r.Props[k] = v
		}
	}
	select {
	case <-c.closed:
	case c.q <- r:
	default:
		if c.cfg.DebugLogging {
			c.log.Debug("telemetry queue full, event dropped", slog.String("event", name))
		}
	}
}

// Flush posts everything queued so far and waits until that is done or ctx ends.
func (c *Client) Flush(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	ack := make(chan struct{})
	select {
	case c.flushes <- ack:
	case <-c.done:
		return
	case <-ctx.Done():
		return
	}
	select {
	case <-ack:
	case <-ctx.Done():
	}
}

// Close posts the pending batch and stops the sender. It is safe to call twice.
func (c *Client) Close() {
	c.once.Do(func() { close(c.closed) })
	<-c.done
}

func (c *Client) loop() {
	defer close(c.done)
	tick := time.NewTicker(c.cfg.FlushInterval)
	defer tick.Stop()

	var pending []record
	send := func() {
		if len(pending) > 0 {
			c.postBatch(pending)
			pending = nil
		}
	}
	drain := func() {
		for {
			select {
			case r := <-c.q:
				pending = append(pending, r)
			default:
				return
			}
		}
	}
	for {
		select {
		case r := <-c.q:
			pending = append(pending, r)
			if len(pending) >= c.cfg.BatchSize {
				send()
			}
		case <-tick.C:
			send()
		case ack := <-c.flushes:
			drain()
			send()
			close(ack)
		case <-c.closed:
			drain()
			send()
			return
		}
	}
}

func (c *Client) postBatch(events []record) {
	body, err := json.Marshal(batch{
		Session: c.session,
		Version: version.String(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Events:  events,
	})
	if err != nil {
		c.log.Warn("telemetry batch not encodable", slog.Any("err", err))
		return
	}
	if err := c.post(c.cfg.EventsURL, "application/json", body); err != nil {
		if c.cfg.DebugLogging {
			c.log.Debug("telemetry send failed", slog.Int("events", len(events)), slog.Any("err", err))
		}
		return
	}
	if c.cfg.DebugLogging {
		c.log.Debug("telemetry batch sent", slog.Int("events", len(events)))
	}
}

// UploadCrash posts report to CrashURL and returns when the request finished.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	if err := c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", report); err != nil {
		c.log.Warn("crash upload failed", slog.Any("err", err))
		return
	}
	c.log.Info("crash report uploaded", slog.Int("bytes", len(report)))
}

func (c *Client) post(url, contentType string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Session", c.session)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: %s", url, resp.Status)
	}
	return nil
}
