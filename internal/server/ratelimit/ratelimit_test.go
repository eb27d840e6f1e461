package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLimiter_Refill(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Second,
		EndpointConfigs: []EndpointConfig{
			{Path: "/refill", Method: "GET", Limit: 10, Window: time.Second, Burst: 1},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	if allowed, _ := limiter.Allow("127.0.0.1", "/refill", "GET"); !allowed {
		t.Fatal("Expected first request to be allowed")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/refill", "GET"); allowed {
		t.Fatal("Expected second request to be denied")
	}

	// One token refills every 100ms
	time.Sleep(150 * time.Millisecond)

	if allowed, _ := limiter.Allow("127.0.0.1", "/refill", "GET"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestLimiter_ResetTime(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	var info Info
	for i := 0; i < 5; i++ {
		_, info = limiter.Allow("127.0.0.1", "/test", "GET")
	}

	if info.Remaining != 5 {
		t.Errorf("Expected 5 remaining tokens, got %d", info.Remaining)
	}
	if !info.ResetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/test"
	method := "GET"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Whitelisted IP should always be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Blacklisted IP should always be denied
	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	if allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	config := &Config{
		Enabled: false,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// When disabled, all requests should be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/ai/", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Test endpoint-specific limit (burst allows 5 immediately)
	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow(clientID, "/ai/summary", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	// 6th request should be denied (limit reached)
	allowed, rateInfo := limiter.Allow(clientID, "/ai/summary", "POST")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if rateInfo.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
	}

	// Different endpoint should use default limit
	allowed, rateInfo = limiter.Allow(clientID, "/other", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/test"
	method := "GET"

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow(clientID, endpoint, method)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// Should have allowed exactly 100 requests
	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	config := &Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 100 * time.Millisecond,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Create buckets for multiple clients
	for i := 0; i < 10; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/test", "GET")
		if !allowed {
			t.Errorf("Expected request from %s to be allowed", clientID)
		}
	}

	// Wait for cleanup
	time.Sleep(150 * time.Millisecond)

	// Access buckets to update last access time
	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/test", "GET")
		if !allowed {
			t.Errorf("Expected request from %s to be allowed", clientID)
		}
	}

	// Wait for cleanup again
	time.Sleep(150 * time.Millisecond)

	// Buckets should still exist (we accessed them recently)
	// This is a basic test - full cleanup testing would require more time
	// Verify that accessed buckets still work
	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/test", "GET")
		if !allowed {
			t.Errorf("Expected request from %s to still be allowed after cleanup", clientID)
		}
	}
}

func TestLimiter_Burst(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/burst", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Should allow burst of 5 requests immediately
	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow(clientID, "/burst", "POST")
		if !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	// 6th request should be denied (burst exhausted, no refill yet)
	allowed, _ := limiter.Allow(clientID, "/burst", "POST")
	if allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if limiter == nil {
		t.Error("Expected limiter to be created with nil config")
	}

	// Should use defaults
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	limiter.Allow("127.0.0.1", "/a", "GET")
	limiter.Allow("127.0.0.2", "/b", "GET")
	if got := limiter.size(); got != 2 {
		t.Fatalf("Expected 2 buckets, got %d", got)
	}

	limiter.cleanupBuckets(time.Now().Add(time.Second))
	if got := limiter.size(); got != 0 {
		t.Errorf("Expected idle buckets to be dropped, got %d", got)
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "health is unlimited", path: "/health", method: "GET", wantLimit: 0},
		{name: "ai prefix", path: "/ai/experiences/3/description", method: "POST", wantLimit: 30},
		{name: "exact cover letter generation", path: "/cover-letters", method: "POST", wantLimit: 20},
		{name: "pdf export", path: "/resume/export/pdf", method: "GET", wantLimit: 30},
		{name: "clear all", path: "/data", method: "DELETE", wantLimit: 5},
		{name: "method must match", path: "/data", method: "GET", wantNil: true},
		{name: "editing uses default", path: "/resume/summary", method: "PUT", wantNil: true},
		{name: "version preview prefix", path: "/versions/abc/preview", method: "GET", wantLimit: 120},
		{name: "list is not under the prefix", path: "/versions", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected no match, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected a match")
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, got.Limit)
			}
		})
	}
}

func TestMatchEndpoint_LongestPrefix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/ai/", Method: "POST", Limit: 1},
		{Path: "/ai/experiences/", Method: "POST", Limit: 2},
	}

	if got := MatchEndpoint("/ai/experiences/1/description", "POST", configs); got == nil || got.Limit != 2 {
		t.Errorf("Expected the longer prefix to win, got %+v", got)
	}
	if got := MatchEndpoint("/ai/summary", "POST", configs); got == nil || got.Limit != 1 {
		t.Errorf("Expected the /ai/ prefix, got %+v", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "false")
		if cfg := LoadConfig(); cfg.Enabled {
			t.Error("Expected rate limiting to be disabled")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
		t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "bogus")
		t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
		t.Setenv("RATE_LIMIT_BLACKLIST", "")
		t.Setenv("RATE_LIMIT_AI_PER_HOUR", "7")

		cfg := LoadConfig()
		if !cfg.Enabled {
			t.Fatal("Expected rate limiting to be enabled by default")
		}
		if cfg.DefaultLimit != 50 {
			t.Errorf("Expected default limit 50, got %d", cfg.DefaultLimit)
		}
		if cfg.DefaultWindow != time.Minute {
			t.Errorf("Expected malformed window to fall back to 1m, got %v", cfg.DefaultWindow)
		}
		if len(cfg.Whitelist) != 2 || !cfg.Whitelist["10.0.0.2"] {
			t.Errorf("Unexpected whitelist %v", cfg.Whitelist)
		}
		if len(cfg.Blacklist) != 0 {
			t.Errorf("Expected empty blacklist, got %v", cfg.Blacklist)
		}
		if got := MatchEndpoint("/ai/summary", "POST", cfg.EndpointConfigs); got == nil || got.Limit != 7 {
			t.Errorf("Expected AI limit override, got %+v", got)
		}
	})
}
