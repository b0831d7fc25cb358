// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

// LivePath is the device endpoint streaming IMU bursts.
const LivePath = "/imu"

// Live streams bursts from a networked sensor over a websocket session.
// Each message carries one JSON-encoded imu.Burst.
type Live struct {
	url  string
	conn *websocket.Conn
}

// LiveURL turns a bare host[:port] into the device stream URL. Targets that
// already carry a scheme are used as given.
func LiveURL(target string) (string, error) {
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", fmt.Errorf("%w: target %q: %v", ErrSource, target, err)
		}
		return u.String(), nil
	}
	if target == "" {
		return "", fmt.Errorf("%w: empty target", ErrSource)
	}
	u := url.URL{Scheme: "ws", Host: target, Path: LivePath}
	return u.String(), nil
}

// DialLive opens the session to the device at target.
func DialLive(ctx context.Context, target string) (*Live, error) {
	addr, err := LiveURL(target)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("%w: connect %s: %v (status %s)", ErrSource, addr, err, resp.Status)
		}
		return nil, fmt.Errorf("%w: connect %s: %v", ErrSource, addr, err)
	}
	log.Printf("connected to IMU stream at %s", addr)

	return &Live{url: addr, conn: conn}, nil
}

// ReceiveBurst blocks until the device sends the next burst. There is no
// read deadline; cancelling ctx is the only way to unblock a silent device.
func (l *Live) ReceiveBurst(ctx context.Context) (imu.Burst, error) {
	if err := ctx.Err(); err != nil {
		return imu.Burst{}, err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = l.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	_, data, err := l.conn.ReadMessage()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return imu.Burst{}, ctxErr
		}
		return imu.Burst{}, fmt.Errorf("%w: read from %s: %v", ErrSource, l.url, err)
	}

	var b imu.Burst
	if err := json.Unmarshal(data, &b); err != nil {
		return imu.Burst{}, fmt.Errorf("%w: decode burst: %v", ErrSource, err)
	}
	return b, nil
}

// Close ends the session with a normal close frame.
func (l *Live) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := l.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		log.Debugf("IMU stream close frame: %v", err)
	}
	return l.conn.Close()
}
