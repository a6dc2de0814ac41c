package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type wsMessage struct {
	Type string `json:"type"`
	Data struct {
		Fingerprint string `json:"fingerprint"`
	} `json:"data"`
}

func TestDatasetWebSocket(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a_counts.csv", countsCSV)

	logger := zerolog.Nop()
	r := gin.New()
	r.GET("/ws/dataset", DatasetWebSocket(dir, 20*time.Millisecond, &logger))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dataset"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var state wsMessage
	if err := conn.ReadJSON(&state); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if state.Type != "dataset_state" || state.Data.Fingerprint == "" {
		t.Fatalf("first message = %+v", state)
	}

	write(t, dir, "b_counts.csv", countsCSV)

	var changed wsMessage
	if err := conn.ReadJSON(&changed); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if changed.Type != "dataset_changed" {
		t.Errorf("Type = %q, want dataset_changed", changed.Type)
	}
	if changed.Data.Fingerprint == state.Data.Fingerprint {
		t.Error("fingerprint should change after a new file")
	}
}
