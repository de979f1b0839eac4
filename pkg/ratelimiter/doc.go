// Package ratelimiter implements a token bucket limiter with a pluggable
// store.
//
// calcdesk uses it to cap input events per session: each POST /press
// consumes one token from the session's bucket and a denied press answers
// 429 with Retry-After.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//	    Capacity:       30,
//	    RefillRate:     15,
//	    RefillInterval: time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//
//	res, err := bucket.Allow(ctx, sessionID)
//	if err == nil && !res.Allowed() {
//	    ratelimiter.SetHeaders(w.Header(), res)
//	}
package ratelimiter
