package main

import (
	"errors"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestServeReportsListenFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()

	fatal := make(chan error, 1)
	serve(&http.Server{Addr: busy.Addr().String()}, "http", zap.NewNop(), fatal)

	sig := make(chan os.Signal)
	done := make(chan error, 1)
	go func() { done <- wait(sig, fatal, zap.NewNop()) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected the listener error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not return after listener failure")
	}
}

func TestWaitSignalIsClean(t *testing.T) {
	sig := make(chan os.Signal, 1)
	sig <- syscall.SIGTERM
	if err := wait(sig, make(chan error), zap.NewNop()); err != nil {
		t.Fatalf("err = %v", err)
	}

	fatal := make(chan error, 1)
	boom := errors.New("grpc: boom")
	fatal <- boom
	if err := wait(make(chan os.Signal), fatal, zap.NewNop()); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
