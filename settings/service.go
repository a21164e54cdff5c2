package settings

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/plainconf/settings-api/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

// Service defines the API for settings HTTP handlers and other hosts.
// It adds typed accessors on top of a Store; values are always stored
// as their string representation and converted at call time.
//
// Failures are returned as errors.RequestError carrying the HTTP
// status they should be reported with; the underlying domain error
// (KeyNotFoundError, ConversionError, ErrNoFileLoaded) stays reachable
// through errors.As and errors.Is. Callers that want the unmapped
// errors can use a Store directly.
type Service struct {
	store           Store
	saveRateLimiter ratelimit.Limiter
}

// NewService initiates a new settings service.
func NewService(store Store, opts ...ServiceOption) *Service {
	svc := &Service{
		store:           store,
		saveRateLimiter: ratelimit.NewUnlimited(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// EnsureFileExists creates an empty settings file at path if none exists.
func (svc *Service) EnsureFileExists(path string) error {
	return svc.store.EnsureFileExists(path)
}

// Load reads the settings file at path, replacing all current entries.
func (svc *Service) Load(path string) error {
	log.WithFields(log.Fields{"path": path}).Trace("Load settings")
	return svc.store.Load(path)
}

// Reload re-reads the settings file the store is bound to.
func (svc *Service) Reload() error {
	log.Trace("Reload settings")

	err := svc.store.Reload()
	if err == ErrNoFileLoaded {
		return &errors.RequestError{
			StatusCode: http.StatusConflict,
			Err:        err,
		}
	}

	return err
}

// List returns all entries ordered by key.
func (svc *Service) List() []Setting {
	all := svc.store.Settings()

	result := make([]Setting, 0, len(all))
	for key, value := range all {
		result = append(result, Setting{Key: key, Value: value})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// Get returns the raw string value for key.
func (svc *Service) Get(key string) (string, error) {
	value, err := svc.store.Get(key)
	if err != nil {
		if _, ok := err.(*KeyNotFoundError); ok {
			// Convert error to a 404 RequestError
			return "", &errors.RequestError{
				StatusCode: http.StatusNotFound,
				Err:        err,
			}
		}
		return "", err
	}

	return value, nil
}

// GetInt returns the value for key parsed as a base-10 integer.
func (svc *Service) GetInt(key string) (int64, error) {
	value, err := svc.Get(key)
	if err != nil {
		return 0, err
	}

	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        &ConversionError{Key: key, Value: value, Target: "int", Err: err},
		}
	}

	return result, nil
}

// GetFloat returns the value for key parsed as a float.
func (svc *Service) GetFloat(key string) (float64, error) {
	value, err := svc.Get(key)
	if err != nil {
		return 0, err
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &errors.RequestError{
			StatusCode: http.StatusBadRequest,
			Err:        &ConversionError{Key: key, Value: value, Target: "float", Err: err},
		}
	}

	return result, nil
}

// GetBool returns the value for key read as a boolean. The read is
// deliberately permissive: exactly "true" or "1" is true, every other
// value is false. Unlike the numeric accessors it never fails on the
// value itself.
func (svc *Service) GetBool(key string) (bool, error) {
	value, err := svc.Get(key)
	if err != nil {
		return false, err
	}

	return value == "true" || value == "1", nil
}

// Set inserts or overwrites the raw string value for key.
func (svc *Service) Set(key string, value string) {
	log.WithFields(log.Fields{"key": key}).Trace("Set setting")
	svc.store.Set(key, value)
}

// SetInt stores value as its base-10 string representation.
func (svc *Service) SetInt(key string, value int64) {
	svc.Set(key, strconv.FormatInt(value, 10))
}

// SetFloat stores value as its shortest decimal string representation.
func (svc *Service) SetFloat(key string, value float64) {
	svc.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// SetBool stores value as "true" or "false".
func (svc *Service) SetBool(key string, value bool) {
	svc.Set(key, strconv.FormatBool(value))
}

// Save persists all entries to the file the store is bound to.
func (svc *Service) Save() error {
	log.Trace("Save settings")

	svc.saveRateLimiter.Take()

	err := svc.store.Save()
	if err == ErrNoFileLoaded {
		// Convert error to a 409 RequestError
		return &errors.RequestError{
			StatusCode: http.StatusConflict,
			Err:        err,
		}
	}

	return err
}

// SaveAs persists all entries to path.
func (svc *Service) SaveAs(path string) error {
	log.WithFields(log.Fields{"path": path}).Trace("Save settings as")

	svc.saveRateLimiter.Take()

	return svc.store.SaveAs(path)
}
