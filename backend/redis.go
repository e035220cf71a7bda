package backend

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/vectordb/vbench/harness"
	"github.com/vectordb/vbench/workload"
)

const redisKeyPrefix = "vbench:"

type redisStore struct {
	client *redis.Client
}

func openRedis(_, serviceURL string) (harness.Store, error) {
	opts, err := redis.ParseURL(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url %q: %w", serviceURL, err)
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()

		return nil, fmt.Errorf("ping %s (%v): %w",
			serviceURL, err, harness.ErrUnavailable)
	}

	// Clear stale keys from a previous backend or sweep iteration.
	if err := client.FlushDB(ctx).Err(); err != nil {
		client.Close()

		return nil, fmt.Errorf("flushdb: %w", err)
	}

	return &redisStore{client: client}, nil
}

func redisKey(id int64) string {
	return redisKeyPrefix + strconv.FormatInt(id, 10)
}

func (s *redisStore) WriteAll(entries []workload.Entry) error {
	ctx := context.Background()

	pipe := s.client.Pipeline()
	for i := range entries {
		e := &entries[i]
		pipe.Set(ctx, redisKey(e.ID), workload.Encode(e), 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("pipelined set: %w", err)
	}

	return nil
}

func (s *redisStore) Size() (int64, error) {
	info, err := s.client.Info(context.Background(), "memory").Result()
	if err != nil {
		return 0, fmt.Errorf("info memory: %w", err)
	}

	return parseMemoryInfo(info)
}

// parseMemoryInfo extracts used_memory_dataset from an INFO memory
// reply, falling back to used_memory.
func parseMemoryInfo(info string) (int64, error) {
	var usedMemory int64

	foundUsed := false

	scanner := bufio.NewScanner(strings.NewReader(info))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		field, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		switch field {
		case "used_memory_dataset":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("parse used_memory_dataset %q: %w", value, err)
			}

			return n, nil
		case "used_memory":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("parse used_memory %q: %w", value, err)
			}

			usedMemory = n
			foundUsed = true
		}
	}

	if !foundUsed {
		return 0, fmt.Errorf("no memory fields in INFO reply")
	}

	return usedMemory, nil
}

func (s *redisStore) ReadAll(entries []workload.Entry) error {
	ctx := context.Background()

	pipe := s.client.Pipeline()
	for i := range entries {
		pipe.Get(ctx, redisKey(entries[i].ID))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("pipelined get: %w", err)
	}

	return nil
}

func (s *redisStore) Close() error {
	// Leave the shared service clean for whatever runs next.
	if err := s.client.FlushDB(context.Background()).Err(); err != nil {
		s.client.Close()

		return fmt.Errorf("flushdb: %w", err)
	}

	return s.client.Close()
}
