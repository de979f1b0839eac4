// Package session keeps anonymous browser sessions for the calculator.
//
// A Manager reads the session token through a Transport (an HttpOnly
// cookie holding a random UUID) and loads the session from a Store. The web
// module stores the calculator snapshot in the session, so a reload or a
// second tab continues the same calculation:
//
//	mgr := session.NewFromConfig(cfg.Session, session.WithStore(store))
//	r.Use(mgr.EnsureSession)
//
//	s, _ := session.FromContext(r.Context())
//	var st calculator.State
//	found, err := s.Decode("calculator", &st)
//	...
//	_ = s.Encode("calculator", calc.State())
//	_ = mgr.Save(ctx, nil, s)
//
// Two stores ship with the package. MemoryStore runs a cleanup goroutine
// for expired sessions; RedisStore (github.com/redis/go-redis/v9) sets a
// key TTL from the session expiry. Sessions slide by the idle timeout on
// every Save and never outlive the max lifetime.
//
// Errors use dotted identifiers such as "session.not_found" so they can be
// matched with errors.Is and surfaced as stable codes.
package session
