// Package redis connects to Redis with bounded retries and exposes a
// readiness check for the HTTP health endpoint.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// The alert stream publisher in package alerts takes the returned client.
package redis
