package settings

import "go.uber.org/ratelimit"

type StoreOption func(*FileStore)

// WithRetargetOnSaveAs makes SaveAs also rebind the store to the file
// it just wrote, so a following Save targets that file. The default
// keeps the historical behavior where only Load binds a file.
func WithRetargetOnSaveAs() StoreOption {
	return func(s *FileStore) {
		s.retargetOnSaveAs = true
	}
}

type ServiceOption func(*Service)

// WithSaveRatelimiter paces disk writes made through the service.
func WithSaveRatelimiter(limiter ratelimit.Limiter) ServiceOption {
	return func(svc *Service) {
		svc.saveRateLimiter = limiter
	}
}
