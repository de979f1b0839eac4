// Package redis connects to the Redis server backing the session store.
//
// Connect retries the initial ping according to Config so the binary can
// start alongside a Redis container that is still booting. Healthcheck
// adapts the client to the /readyz probe.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	store := session.NewRedisStore(client)
package redis
