package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestEnqueueUploadUnreachableQueue(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	svc := NewSheetService(nil, rdb, nil)
	if err := svc.EnqueueUpload(context.Background(), "rec-1"); err == nil {
		t.Error("EnqueueUpload() returned nil with the queue down")
	}
}
